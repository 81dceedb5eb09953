package global

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigLoad(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	content := []byte("server:\n  backend: database\ndatabase:\n  type: sqlite\n  path: /tmp/notes.db\n")
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	c, err := ConfigLoad(tmpFile)
	if err != nil {
		t.Fatalf("ConfigLoad failed: %v", err)
	}

	if c.Server.Backend != "database" {
		t.Errorf("expected backend database, got %s", c.Server.Backend)
	}
	if c.Database.Path != "/tmp/notes.db" {
		t.Errorf("expected configured path, got %s", c.Database.Path)
	}
	// Defaults still apply to fields the file does not set
	if c.Database.MaxIdleConns != 10 {
		t.Errorf("expected default max-idle-conns 10, got %d", c.Database.MaxIdleConns)
	}
	if c.KV.Path == "" {
		t.Error("expected default kv path to be set")
	}
}

func TestConfigSave(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("log:\n  level: info\n"), 0644); err != nil {
		t.Fatalf("failed to write initial config file: %v", err)
	}

	c, err := ConfigLoad(tmpFile)
	if err != nil {
		t.Fatalf("ConfigLoad failed: %v", err)
	}

	c.Log.Level = "debug"
	if err := c.Save(); err != nil {
		t.Fatalf("Config.Save error: %v, file: %s", err, c.File)
	}

	updatedData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("failed to read saved config file: %v", err)
	}

	var updated config
	if err := yaml.Unmarshal(updatedData, &updated); err != nil {
		t.Fatalf("failed to unmarshal saved config: %v", err)
	}
	if updated.Log.Level != "debug" {
		t.Errorf("expected level debug, got %s", updated.Log.Level)
	}
}
