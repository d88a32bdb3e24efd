package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, content string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("SMART_EXTRACT_ROOT", root)
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeTestConfig(t, `
smartrecruiters:
  token: abc
  reports: ["r1", "r2"]
gcs:
  bucket: my-bucket
`)
	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SmartRecruiters.BaseURL != "https://api.smartrecruiters.com" {
		t.Errorf("Expected default base_url, got %q", cfg.SmartRecruiters.BaseURL)
	}
	if cfg.SmartRecruiters.PollIntervalMs != 100 {
		t.Errorf("Expected default poll interval 100, got %d", cfg.SmartRecruiters.PollIntervalMs)
	}
	if cfg.GCS.Prefix != "smartrecruiters" {
		t.Errorf("Expected default prefix 'smartrecruiters', got %q", cfg.GCS.Prefix)
	}
	if cfg.Extract.DataDir != "data" {
		t.Errorf("Expected default data dir 'data', got %q", cfg.Extract.DataDir)
	}
	if len(cfg.SmartRecruiters.Reports) != 2 || cfg.SmartRecruiters.Reports[0] != "r1" {
		t.Errorf("Expected reports [r1 r2], got %v", cfg.SmartRecruiters.Reports)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	writeTestConfig(t, `
smartrecruiters:
  token: from-yaml
  reports: ["yaml-report"]
gcs:
  bucket: yaml-bucket
`)
	t.Setenv("SMARTTOKEN", "from-env")
	t.Setenv("GCS_BUCKET_NAME", "env-bucket")
	t.Setenv("REPORT_IDS", `["env-1","env-2"]`)

	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SmartRecruiters.Token != "from-env" {
		t.Errorf("Expected SMARTTOKEN override, got %q", cfg.SmartRecruiters.Token)
	}
	if cfg.GCS.Bucket != "env-bucket" {
		t.Errorf("Expected GCS_BUCKET_NAME override, got %q", cfg.GCS.Bucket)
	}
	if len(cfg.SmartRecruiters.Reports) != 2 || cfg.SmartRecruiters.Reports[1] != "env-2" {
		t.Errorf("Expected REPORT_IDS override, got %v", cfg.SmartRecruiters.Reports)
	}
}

func TestLoadConfig_BadReportIDsEnvIgnored(t *testing.T) {
	writeTestConfig(t, `
smartrecruiters:
  reports: ["yaml-report"]
`)
	t.Setenv("REPORT_IDS", "not-json")
	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.SmartRecruiters.Reports) != 1 || cfg.SmartRecruiters.Reports[0] != "yaml-report" {
		t.Errorf("Expected yaml reports kept on bad env json, got %v", cfg.SmartRecruiters.Reports)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv("SMART_EXTRACT_ROOT", t.TempDir())
	if _, err := LoadConfig("config.yaml"); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}
