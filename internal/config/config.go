package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"mortsim/internal/amortize"
	"mortsim/internal/model"
)

// Config holds all mortsim configuration.
type Config struct {
	Loan       LoanConfig       `toml:"loan"`
	Output     OutputConfig     `toml:"output"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// LoanConfig holds the default loan inputs.
type LoanConfig struct {
	Price           float64 `toml:"price"`
	DownpaymentRate float64 `toml:"downpayment_rate"`
	Years           int     `toml:"years"`
	AnnualRate      float64 `toml:"annual_rate"`
}

// OutputConfig holds presentation defaults for the CLI.
type OutputConfig struct {
	Format      string `toml:"format"`
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Formats lists the accepted export formats.
var Formats = []string{"table", "csv", "json"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Loan: LoanConfig{
			Price:           200000,
			DownpaymentRate: 0.2,
			Years:           30,
			AnnualRate:      0.0703,
		},
		Output: OutputConfig{
			Format:      "table",
			ChartWidth:  80,
			ChartHeight: 16,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// LoanModel converts the configured loan section into engine inputs.
func (l LoanConfig) LoanModel() model.Loan {
	return model.Loan{
		Price:           l.Price,
		DownpaymentRate: l.DownpaymentRate,
		Years:           l.Years,
		AnnualRate:      l.AnnualRate,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mortsim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mortsim")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top of the file.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if err := amortize.ValidateLoan(c.Loan.LoanModel()); err != nil {
		errs = append(errs, fmt.Errorf("[loan] %w", err))
	}
	if !validFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("[output] format %q must be one of %v", c.Output.Format, Formats))
	}
	if c.Output.ChartWidth < 20 {
		errs = append(errs, fmt.Errorf("[output] chart_width %d must be at least 20", c.Output.ChartWidth))
	}
	if c.Output.ChartHeight < 5 {
		errs = append(errs, fmt.Errorf("[output] chart_height %d must be at least 5", c.Output.ChartHeight))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("[server] addr cannot be empty"))
	}

	return errors.Join(errs...)
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

func applyEnv(cfg *Config) error {
	var errs []error

	if v, ok := lookup("MORTSIM_PRICE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("MORTSIM_PRICE", err))
		if err == nil {
			cfg.Loan.Price = f
		}
	}
	if v, ok := lookup("MORTSIM_DOWNPAYMENT_RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("MORTSIM_DOWNPAYMENT_RATE", err))
		if err == nil {
			cfg.Loan.DownpaymentRate = f
		}
	}
	if v, ok := lookup("MORTSIM_YEARS"); ok {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("MORTSIM_YEARS", err))
		if err == nil {
			cfg.Loan.Years = n
		}
	}
	if v, ok := lookup("MORTSIM_ANNUAL_RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		errs = append(errs, envErr("MORTSIM_ANNUAL_RATE", err))
		if err == nil {
			cfg.Loan.AnnualRate = f
		}
	}
	if v, ok := lookup("MORTSIM_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup("MORTSIM_THEME"); ok {
		cfg.Appearance.Theme = v
	}

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("parsing %s: %w", key, err)
}
