package commands

import (
	"errors"
	"os"
	"time"

	"outreach-backend/lib/configutil"
)

type Config struct {
	// sqlite path or libsql:// url for stored intelligence
	Database string `json:"database"`
	// prompt template with the substitution markers
	Template string `json:"template"`
	Model    string `json:"model"`
	// chat surface link substituted into the prompt when a credential
	// has no override
	GemLink string `json:"gem_link"`
	// endpoint of the maps scraper sidecar
	MapsScraperURL string `json:"maps_scraper_url"`

	CooldownSeconds int  `json:"cooldown_seconds"`
	RotateJitterMs  int  `json:"rotate_jitter_ms"`
	RotateOnTimeout bool `json:"rotate_on_timeout"`

	Report      string `json:"report"`
	DraftDir    string `json:"draft_dir"`
	ArtifactDir string `json:"artifact_dir"`
}

// loadConfig reads outreach.json5, a missing file just means all
// defaults. Credentials are environment-only and not part of this
// file.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config]("outreach.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	if cfg.Database == "" {
		cfg.Database = "intel.db"
	}
	if cfg.Template == "" {
		cfg.Template = "templates/prompt_template.txt"
	}
	if cfg.Report == "" {
		cfg.Report = "outreach_report.csv"
	}
	if cfg.DraftDir == "" {
		cfg.DraftDir = "drafts"
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = "artifacts"
	}
	return cfg, nil
}

func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c Config) RotateJitter() time.Duration {
	return time.Duration(c.RotateJitterMs) * time.Millisecond
}
