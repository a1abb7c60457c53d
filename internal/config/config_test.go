package config

import (
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func mapLookup(env map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnvOverridesNestedFields(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	env := map[string]string{
		"SERVER_PORT":           "9090",
		"DB_DRIVER":             "mongo",
		"DB_SEED":               "true",
		"REDIS_DB":              "3",
		"PHOTO_QUALITY":         "65.5",
		"OSS_BUCKET":            "registrar-files",
		"PAGINATION_MAX_LIMIT":  "50",
		"STORAGE_MAX_UPLOAD_MB": "8",
	}
	if err := applyEnv(reflect.ValueOf(cfg), mapLookup(env)); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverMongo || !cfg.Database.Seed {
		t.Fatalf("expected mongo driver with seed, got %s seed=%v", cfg.Database.Driver, cfg.Database.Seed)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Storage.Photo.Quality != 65.5 {
		t.Fatalf("expected quality 65.5, got %v", cfg.Storage.Photo.Quality)
	}
	if cfg.Storage.OSS.Bucket != "registrar-files" {
		t.Fatalf("expected nested oss bucket override, got %q", cfg.Storage.OSS.Bucket)
	}
	if cfg.Pagination.MaxLimit != 50 || cfg.MaxUploadBytes() != 8<<20 {
		t.Fatalf("unexpected limits: max=%d upload=%d", cfg.Pagination.MaxLimit, cfg.MaxUploadBytes())
	}
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	cfg := &Config{}
	if err := applyEnv(reflect.ValueOf(cfg), mapLookup(map[string]string{"REDIS_DB": "three"})); err == nil {
		t.Fatalf("expected error for malformed integer")
	}
	if err := applyEnv(reflect.ValueOf(cfg), mapLookup(map[string]string{"AUTH_REQUIRE_TOKEN": "maybe"})); err == nil {
		t.Fatalf("expected error for malformed boolean")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		setDefaults(cfg)
		cfg.Admin.Username = "admin"
		cfg.Admin.Password = "secret"
		cfg.JWT.Secret = "jwt-secret"
		return cfg
	}

	if err := validateConfig(valid()); err != nil {
		t.Fatalf("expected defaults plus credentials to validate, got %v", err)
	}

	cases := map[string]func(*Config){
		"missing admin":      func(c *Config) { c.Admin.Username = "" },
		"missing password":   func(c *Config) { c.Admin.Password = "" },
		"missing jwt secret": func(c *Config) { c.JWT.Secret = "" },
		"bad driver":         func(c *Config) { c.Database.Driver = "sqlite" },
		"bad storage":        func(c *Config) { c.Storage.Driver = "s3" },
		"oss without keys":   func(c *Config) { c.Storage.Driver = StorageOSS },
		"bad jwt expiry":     func(c *Config) { c.JWT.Expiration = "soon" },
		"zero upload size":   func(c *Config) { c.Storage.MaxUploadMB = 0 },
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	hashed := valid()
	hashed.Admin.Password = ""
	hashed.Admin.PasswordHash = "$2a$12$abcdefghijklmnopqrstuv"
	if err := validateConfig(hashed); err != nil {
		t.Fatalf("expected password hash alone to be accepted, got %v", err)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "7070"
admin:
  username: registrar
  password: from-file
jwt:
  secret: yaml-secret
cors:
  allowed_origins: "http://localhost:5173, https://admin.example.com"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ADMIN_PASSWORD", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected yaml port, got %s", cfg.Server.Port)
	}
	if cfg.Admin.Password != "from-env" {
		t.Fatalf("expected env to override yaml, got %s", cfg.Admin.Password)
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins: %v", got)
	}
	if cfg.PublicBaseURL() != "http://localhost:7070" {
		t.Fatalf("unexpected base url: %s", cfg.PublicBaseURL())
	}
}

func TestPostgresConnectionStringEscapesCredentials(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "reg user"
	cfg.Database.Password = "p@ss:w/rd?#"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "6543"
	cfg.Database.SSLMode = ""

	u, err := url.Parse(cfg.GetPostgresConnectionString())
	if err != nil {
		t.Fatalf("connection string does not parse: %v", err)
	}
	password, _ := u.User.Password()
	if u.User.Username() != "reg user" || password != "p@ss:w/rd?#" {
		t.Fatalf("credentials did not round-trip: %q %q", u.User.Username(), password)
	}
	if u.Host != "db.internal:6543" || u.Path != "/registrar" {
		t.Fatalf("unexpected host or database: %s %s", u.Host, u.Path)
	}
	if u.Query().Get("sslmode") != "disable" {
		t.Fatalf("expected sslmode to default to disable, got %q", u.Query().Get("sslmode"))
	}
}
