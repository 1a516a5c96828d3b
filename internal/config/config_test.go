package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mortsim/internal/amortize"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"MORTSIM_PRICE", "MORTSIM_DOWNPAYMENT_RATE", "MORTSIM_YEARS",
		"MORTSIM_ANNUAL_RATE", "MORTSIM_ADDR", "MORTSIM_THEME",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists = true before Save")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	l := DefaultConfig().Loan.LoanModel().Parameters()
	if l.TermMonths != 360 {
		t.Fatalf("default TermMonths = %d, want 360", l.TermMonths)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Loan.Price = 425000
	cfg.Loan.Years = 15
	cfg.Appearance.Theme = "tokyo-night"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(dir, "mortsim", "config.toml")
	if Path() != want {
		t.Fatalf("Path = %q, want %q", Path(), want)
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mortsim", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[loan]\nannual_rate = 0.05\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loan.AnnualRate != 0.05 {
		t.Fatalf("AnnualRate = %v, want 0.05", cfg.Loan.AnnualRate)
	}
	if cfg.Loan.Price != 200000 {
		t.Fatalf("Price = %v, want default 200000", cfg.Loan.Price)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mortsim", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[loan\nprice = "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil || !strings.HasPrefix(err.Error(), "parsing config:") {
		t.Fatalf("Load err = %v, want parsing error", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MORTSIM_PRICE", "350000")
	t.Setenv("MORTSIM_YEARS", "20")
	t.Setenv("MORTSIM_ADDR", ":9999")
	t.Setenv("MORTSIM_THEME", "terminal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loan.Price != 350000 {
		t.Errorf("Price = %v, want 350000", cfg.Loan.Price)
	}
	if cfg.Loan.Years != 20 {
		t.Errorf("Years = %d, want 20", cfg.Loan.Years)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q, want terminal", cfg.Appearance.Theme)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("MORTSIM_ANNUAL_RATE", "seven")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "MORTSIM_ANNUAL_RATE") {
		t.Fatalf("Load err = %v, want MORTSIM_ANNUAL_RATE error", err)
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Loan.DownpaymentRate = 1
	cfg.Output.Format = "xml"
	cfg.Server.Addr = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate returned nil")
	}
	if !errors.Is(err, amortize.ErrInvalidInput) {
		t.Errorf("err does not wrap ErrInvalidInput: %v", err)
	}
	for _, want := range []string{"downpayment_rate", "format", "addr"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err %q missing %q", err, want)
		}
	}
}
