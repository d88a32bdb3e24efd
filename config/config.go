package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"smart-extract/utils"
)

type Config struct {
	SmartRecruiters struct {
		BaseURL        string   `yaml:"base_url"`
		Token          string   `yaml:"token"`
		Reports        []string `yaml:"reports"`
		PollIntervalMs int      `yaml:"poll_interval_ms"`
	} `yaml:"smartrecruiters"`
	GCS struct {
		Bucket          string `yaml:"bucket"`
		Prefix          string `yaml:"prefix"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"gcs"`
	Extract struct {
		DataDir string `yaml:"data_dir"`
		XLSX    bool   `yaml:"xlsx"` // écrire aussi une copie Excel à côté du CSV
	} `yaml:"extract"`
	History struct {
		Backend string `yaml:"backend"` // "none", "sqlite", "mysql", "postgres"
		DSN     string `yaml:"dsn"`
	} `yaml:"history"`
	Server struct {
		Listen string `yaml:"listen"`
		LogDir string `yaml:"log_dir"`
	} `yaml:"server"`
	JWT struct {
		Secret            string `yaml:"secret"`
		ExpirationMinutes int    `yaml:"expiration_minutes"`
	} `yaml:"jwt"`
	Auth struct {
		UserFile  string `yaml:"user_file"`
		HashMacro string `yaml:"hash_macro"` // ex: {sha256}({password}{salt}{globalsalt})
		Salt      string `yaml:"salt"`
	} `yaml:"auth"`
	Mail struct {
		Enabled bool     `yaml:"enabled"`
		Host    string   `yaml:"host"`
		Port    int      `yaml:"port"`
		From    string   `yaml:"from"`
		To      []string `yaml:"to"`
	} `yaml:"mail"`
}

func LoadConfig(file string) (*Config, error) {
	var cfg Config
	root := utils.GetProjectRoot()
	cfgPath := filepath.Join(root, file)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SmartRecruiters.BaseURL == "" {
		c.SmartRecruiters.BaseURL = "https://api.smartrecruiters.com"
	}
	if c.SmartRecruiters.PollIntervalMs == 0 {
		// ~10 req/s maxi côté API
		c.SmartRecruiters.PollIntervalMs = 100
	}
	if c.GCS.Prefix == "" {
		c.GCS.Prefix = "smartrecruiters"
	}
	if c.Extract.DataDir == "" {
		c.Extract.DataDir = "data"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 25
	}
}

// Les variables d'environnement priment sur le yaml (comportement historique
// du job : SMARTTOKEN, GCS_BUCKET_NAME, REPORT_IDS en tableau JSON)
func (c *Config) applyEnv() {
	if v := os.Getenv("SMARTTOKEN"); v != "" {
		c.SmartRecruiters.Token = v
	}
	if v := os.Getenv("GCS_BUCKET_NAME"); v != "" {
		c.GCS.Bucket = v
	}
	if v := os.Getenv("REPORT_IDS"); v != "" {
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err == nil {
			c.SmartRecruiters.Reports = ids
		}
	}
}
