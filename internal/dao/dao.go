// Package dao implements the relational storage backend on GORM.
package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/note-storage-engine/global"
	"github.com/haierkeys/note-storage-engine/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dao is the relational implementation of domain.Store. Multi-step
// mutations run inside database transactions, so a failure mid-cascade
// rolls the dataset back to its pre-operation state.
type Dao struct {
	db *gorm.DB
}

// New wraps an existing gorm connection and migrates the schema.
func New(db *gorm.DB) (*Dao, error) {
	if err := model.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Dao{db: db}, nil
}

// NewDBEngine opens a gorm connection for the configured database type.
func NewDBEngine(c global.Database) (*gorm.DB, error) {
	dialector := engineDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type %q", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func engineDialector(c global.Database) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if dir := filepath.Dir(c.Path); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}

// StorageType identifies the backend in statistics and exports.
func (d *Dao) StorageType() string {
	return d.db.Dialector.Name()
}

// Close releases the underlying connection pool.
func (d *Dao) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
