package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/genie/internal/models"
)

func TestDocumentsFromArgs(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("plain content"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := documentsFromArgs([]string{txt})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents", len(docs))
	}
	if docs[0].Filename != "notes.txt" || docs[0].Format != models.FormatText {
		t.Errorf("doc = %+v", docs[0])
	}
	if string(docs[0].Content) != "plain content" {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestDocumentsFromArgs_MissingFile(t *testing.T) {
	if _, err := documentsFromArgs([]string{"/nonexistent/file.txt"}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_CwdFallback(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("debug: true\nserver:\n  port: 9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(orig) }()

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(resolved) != "config.yaml" {
		t.Errorf("resolved = %s", resolved)
	}
	if !cfg.Debug || cfg.Server.Port != 9999 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("server:\n  port: 7777\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != cfgPath {
		t.Errorf("resolved = %s", resolved)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}
