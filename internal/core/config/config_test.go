package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/neilberkman/recrider/internal/core/plaud"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PLAUD_USERNAME", "")
	t.Setenv("PLAUD_PASSWORD", "")
	t.Setenv("PLAUD_BASE_URL", "")

	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != filepath.Join(dir, "recordings.db") {
		t.Errorf("DBPath = %s", cfg.DBPath)
	}
	if cfg.WorkStart != 9 || cfg.WorkEnd != 18 {
		t.Errorf("work window = %d-%d", cfg.WorkStart, cfg.WorkEnd)
	}
	if cfg.BaseURL != plaud.DefaultBaseURL || cfg.ClientID != plaud.DefaultClientID {
		t.Errorf("remote = %s %s", cfg.BaseURL, cfg.ClientID)
	}
	if cfg.Report() != DefaultReportTemplate {
		t.Error("Expected default report template")
	}
	if !errors.Is(cfg.RequireCredentials(), ErrMissingCredentials) {
		t.Error("Expected ErrMissingCredentials without env")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("PLAUD_USERNAME", "me@example.com")
	t.Setenv("PLAUD_PASSWORD", "secret")
	t.Setenv("PLAUD_BASE_URL", "https://api-euc1.plaud.ai")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
db_path = "/tmp/custom.db"
timezone = "Asia/Tokyo"
work_start = 8
work_end = 17
client_id = "cli"
report_template = "{{total}}"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" || cfg.ClientID != "cli" || cfg.Report() != "{{total}}" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BaseURL != "https://api-euc1.plaud.ai" {
		t.Errorf("Expected env to override base url, got %s", cfg.BaseURL)
	}
	if err := cfg.RequireCredentials(); err != nil {
		t.Errorf("RequireCredentials() error = %v", err)
	}

	w, err := cfg.WorkWindow()
	if err != nil {
		t.Fatal(err)
	}
	if w.Location.String() != "Asia/Tokyo" || w.Start != 8 || w.End != 17 {
		t.Errorf("WorkWindow() = %+v", w)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "work_start = "},
		{"bad timezone", `timezone = "Mars/Olympus"`},
		{"inverted window", "work_start = 18\nwork_end = 9"},
		{"hour out of range", "work_end = 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestSave_RoundTripsFileFields(t *testing.T) {
	t.Setenv("PLAUD_USERNAME", "")
	t.Setenv("PLAUD_PASSWORD", "")
	t.Setenv("PLAUD_BASE_URL", "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default(filepath.Dir(path))
	cfg.Timezone = "UTC"
	cfg.Username = "never-written"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "" {
		t.Fatal("Expected config file content")
	}
	for _, secret := range []string{"never-written", "password", "username"} {
		if strings.Contains(string(data), secret) {
			t.Errorf("config file must not contain %q", secret)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Timezone != "UTC" || loaded.DBPath != cfg.DBPath {
		t.Errorf("Load() after Save() = %+v", loaded)
	}
}
