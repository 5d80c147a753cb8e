package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.Secret == "" {
		// Demo fallback, mirrored after the mock SSO setup this replaces.
		cfg.Auth.Secret = "talentview-dev-secret"
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "talentview"
	}
	if cfg.Auth.TokenTTL == "" {
		cfg.Auth.TokenTTL = "12h"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/talentview/data/talentview.db"
	}
}
