// Package global holds the process-wide configuration and logger.
package global

import (
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the loaded configuration singleton.
var Config *config

type config struct {
	// File is the path the config was loaded from, used by Save.
	File     string    `yaml:"-"`
	Server   Server    `yaml:"server"`
	Database Database  `yaml:"database"`
	KV       KV        `yaml:"kv"`
	Log      LogConfig `yaml:"log"`
}

type Server struct {
	RunMode string `yaml:"run-mode" default:"release"`
	// Backend selects the storage implementation: "kv" or "database".
	Backend string `yaml:"backend" default:"kv"`
}

type Database struct {
	Type         string `yaml:"type" default:"sqlite"`
	Path         string `yaml:"path" default:"storage/database/notes.db"`
	Host         string `yaml:"host"`
	UserName     string `yaml:"username"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	Charset      string `yaml:"charset" default:"utf8mb4"`
	ParseTime    bool   `yaml:"parse-time" default:"true"`
	TablePrefix  string `yaml:"table-prefix"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"30"`
}

type KV struct {
	Path string `yaml:"path" default:"storage/kv/notes.bolt"`
}

type LogConfig struct {
	Level string `yaml:"level" default:"info"`
	File  string `yaml:"file" default:"storage/logs/engine.log"`
}

// ConfigLoad reads the yaml config at path, applies defaults and
// installs the result as the singleton.
func ConfigLoad(path string) (*config, error) {
	c := new(config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "config defaults")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	c.File = path
	Config = c
	return c, nil
}

// ConfigDefault installs a pure-default config, used when no file is given.
func ConfigDefault() (*config, error) {
	c := new(config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "config defaults")
	}
	Config = c
	return c, nil
}

// Save writes the current config back to the file it was loaded from.
func (c *config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.File, data, 0644)
}
