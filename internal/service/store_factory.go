package service

import (
	"fmt"

	"github.com/haierkeys/note-storage-engine/global"
	"github.com/haierkeys/note-storage-engine/internal/dao"
	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/kv"
	"github.com/haierkeys/note-storage-engine/pkg/logger"

	"go.uber.org/zap"
)

// OpenStore opens the backend selected by the server config: "kv" for
// the embedded store, "database" for the relational one.
func OpenStore(server global.Server, database global.Database, kvConf global.KV) (domain.Store, error) {
	switch server.Backend {
	case "kv":
		store, err := kv.Open(kvConf.Path)
		if err != nil {
			return nil, err
		}
		global.Log().Info("storage backend ready",
			zap.String(logger.FieldBackend, kv.StorageType))
		return store, nil
	case "database":
		db, err := dao.NewDBEngine(database)
		if err != nil {
			return nil, err
		}
		store, err := dao.New(db)
		if err != nil {
			return nil, err
		}
		global.Log().Info("storage backend ready",
			zap.String(logger.FieldBackend, store.StorageType()))
		return store, nil
	}
	return nil, fmt.Errorf("unknown backend %q", server.Backend)
}
