package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"suggest_model": "gemini-2.5-pro", "db_max_open_conns": 1}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SuggestModel != "gemini-2.5-pro" {
		t.Errorf("SuggestModel = %q", cfg.SuggestModel)
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	// Unset scalars keep their defaults
	if cfg.WebAddr != DefaultConfig().WebAddr {
		t.Errorf("WebAddr = %q, want default", cfg.WebAddr)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on malformed config")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		SuggestModel: "gemini-3-flash-preview",
		WebAddr:      "127.0.0.1:8275",
		AllowedPaths: []string{"/a"},
	}
	overlay := &Config{
		SuggestModel:     "gemini-2.5-pro",
		AllowUnsafePaths: true,
		AllowedPaths:     []string{"/b", "/a"},
	}

	got := Merge(base, overlay)

	if got.SuggestModel != "gemini-2.5-pro" {
		t.Errorf("SuggestModel = %q, overlay should win", got.SuggestModel)
	}
	if got.WebAddr != "127.0.0.1:8275" {
		t.Errorf("WebAddr = %q, base should survive empty overlay", got.WebAddr)
	}
	if !got.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be true")
	}
	if !reflect.DeepEqual(got.AllowedPaths, []string{"/a", "/b"}) {
		t.Errorf("AllowedPaths = %v, want merged dedup", got.AllowedPaths)
	}
}

func TestFindRepoConfig_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0700); err != nil {
		t.Fatal(err)
	}
	cfgDir := filepath.Join(root, "a", ".fantrack")
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(cfgPath, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := FindRepoConfig(nested); got != cfgPath {
		t.Errorf("FindRepoConfig = %q, want %q", got, cfgPath)
	}
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig in clean tree = %q, want empty", got)
	}
}

func TestLoadWithRepo_RepoOverridesGlobal(t *testing.T) {
	global := t.TempDir()
	if err := os.WriteFile(filepath.Join(global, "config.json"),
		[]byte(`{"suggest_model": "global-model", "web_addr": "0.0.0.0:9000"}`), 0600); err != nil {
		t.Fatal(err)
	}

	repo := t.TempDir()
	repoCfg := filepath.Join(repo, ".fantrack")
	if err := os.MkdirAll(repoCfg, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repoCfg, "config.json"),
		[]byte(`{"suggest_model": "repo-model"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithRepo(global, repo)
	if err != nil {
		t.Fatalf("LoadWithRepo failed: %v", err)
	}
	if cfg.SuggestModel != "repo-model" {
		t.Errorf("SuggestModel = %q, repo should win", cfg.SuggestModel)
	}
	if cfg.WebAddr != "0.0.0.0:9000" {
		t.Errorf("WebAddr = %q, global should survive", cfg.WebAddr)
	}
}
