package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Scrape struct {
		Titles []string `yaml:"titles" json:"titles"`
		Cities []string `yaml:"cities" json:"cities"`

		// cap on postings enumerated per (title, city)
		PageLimit int `yaml:"page_limit" json:"page_limit"`

		SnapshotHours int `yaml:"snapshot_hours" json:"snapshot_hours"`

		MaxRetries            int     `yaml:"max_retries" json:"max_retries"`
		BaseDelaySeconds      int     `yaml:"base_delay_seconds" json:"base_delay_seconds"`
		RateLimitDelaySeconds int     `yaml:"rate_limit_delay_seconds" json:"rate_limit_delay_seconds"`
		TimeoutSeconds        int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		HostReqPerSec         float64 `yaml:"host_req_per_sec" json:"host_req_per_sec"`
		Workers               int     `yaml:"workers" json:"workers"`
	} `yaml:"scrape" json:"scrape"`

	// Browser-profile headers sent on every request. Session cookies do NOT
	// belong here; they live in the OS keyring (internal/secrets).
	Headers map[string]string `yaml:"headers" json:"headers"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
