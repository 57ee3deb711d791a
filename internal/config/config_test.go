package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, true},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"unsupported default lang", func(c *Config) { c.Catalog.DefaultLang = "fr" }, true},
		{"unsupported fallback lang", func(c *Config) { c.Catalog.FallbackLang = "de" }, true},
		{"arabic default", func(c *Config) { c.Catalog.DefaultLang = "ar" }, false},
		{"cache disabled ignores addrs", func(c *Config) { c.Cache.Addrs = nil }, false},
		{"cache enabled without addrs", func(c *Config) { c.Cache.Enabled = true }, true},
		{"cache enabled with addrs", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Addrs = []string{"localhost:6379"}
		}, false},
		{"cache invalid driver", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Driver = "memcached"
			c.Cache.Addrs = []string{"localhost:11211"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.DefaultLang != "en" || cfg.Catalog.FallbackLang != "en" {
		t.Errorf("expected en languages, got %q/%q", cfg.Catalog.DefaultLang, cfg.Catalog.FallbackLang)
	}
	if cfg.Cache.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected TTLSec=300, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.KeyPrefix != "storefront:catalog:" {
		t.Errorf("expected KeyPrefix='storefront:catalog:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Cache.ReadinessTimeout)
	}
	if cfg.Generation.ClientTTLSec != 600 || cfg.Generation.MaxClients != 10000 {
		t.Errorf("unexpected generation defaults: %+v", cfg.Generation)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog:    CatalogConfig{DefaultLang: "ar"},
		Cache:      CacheConfig{Driver: "redis", TTLSec: 60, KeyPrefix: "custom:"},
		Generation: GenerationConfig{ClientTTLSec: 30, MaxClients: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Catalog.DefaultLang != "ar" {
		t.Errorf("expected DefaultLang=ar, got %q", cfg.Catalog.DefaultLang)
	}
	if cfg.Cache.Driver != "redis" || cfg.Cache.TTLSec != 60 || cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("cache settings overridden: %+v", cfg.Cache)
	}
	if cfg.Generation.MaxClients != 5 {
		t.Errorf("expected MaxClients=5, got %d", cfg.Generation.MaxClients)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_PORT", "9090")

	tests := []struct {
		in   string
		want string
	}{
		{"port: ${STOREFRONT_TEST_PORT}", "port: 9090"},
		{"port: ${STOREFRONT_TEST_PORT:-8080}", "port: 9090"},
		{"port: ${STOREFRONT_TEST_UNSET:-8080}", "port: 8080"},
		{"port: ${STOREFRONT_TEST_UNSET}", "port: "},
		{"plain: value", "plain: value"},
	}

	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${STOREFRONT_TEST_HTTP_PORT:-8181}
catalog:
  default_lang: ar
cache:
  enabled: true
  addrs: ["localhost:6379"]
auth:
  api_keys: ["k1"]
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("expected port 8181, got %d", cfg.HTTP.Port)
	}
	if cfg.Catalog.DefaultLang != "ar" || cfg.Catalog.FallbackLang != "en" {
		t.Errorf("unexpected catalog config: %+v", cfg.Catalog)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Driver != "valkey" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if len(cfg.Auth.APIKeys) != 1 {
		t.Errorf("expected 1 api key, got %d", len(cfg.Auth.APIKeys))
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
