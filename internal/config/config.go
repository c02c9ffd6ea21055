package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Clock      ClockConfig    `mapstructure:"clock"`
	Bank       BankConfig     `mapstructure:"bank"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ClockConfig sets where the toy clock of a fresh session starts and how far
// one tick moves it.
type ClockConfig struct {
	Start string        `mapstructure:"start"`
	Step  time.Duration `mapstructure:"step"`
}

// BankConfig holds the defaults for banks created without explicit scalars.
// Decimal values are kept as strings so they survive YAML untouched.
type BankConfig struct {
	InterestRate    string        `mapstructure:"interest_rate"`
	CreditFee       string        `mapstructure:"credit_fee"`
	SuspiciousLimit string        `mapstructure:"suspicious_limit"`
	DepositTerm     time.Duration `mapstructure:"deposit_term"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const DefaultClockStart = "2024-01-01T00:00:00Z"

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Clock:    ClockConfig{Start: DefaultClockStart, Step: 24 * time.Hour},
		Bank: BankConfig{
			InterestRate:    "0",
			CreditFee:       "0",
			SuspiciousLimit: "1000",
			DepositTerm:     bank.DefaultDepositTerm,
		},
		Log: LogConfig{Level: "info"},
	}
}

// SetDefaults returns the flat key/value view of NewDefault, used to seed
// viper before the config file is read.
func SetDefaults() map[string]any {
	d := NewDefault()
	return map[string]any{
		"database.path":         d.Database.Path,
		"clock.start":           d.Clock.Start,
		"clock.step":            d.Clock.Step.String(),
		"bank.interest_rate":    d.Bank.InterestRate,
		"bank.credit_fee":       d.Bank.CreditFee,
		"bank.suspicious_limit": d.Bank.SuspiciousLimit,
		"bank.deposit_term":     d.Bank.DepositTerm.String(),
		"log.level":             d.Log.Level,
	}
}

// BankDefaults parses the bank section into a validated bank.Config.
func (c *Config) BankDefaults() (bank.Config, error) {
	rate, err := decimal.NewFromString(c.Bank.InterestRate)
	if err != nil {
		return bank.Config{}, fmt.Errorf("bank.interest_rate %q: %w", c.Bank.InterestRate, err)
	}
	fee, err := decimal.NewFromString(c.Bank.CreditFee)
	if err != nil {
		return bank.Config{}, fmt.Errorf("bank.credit_fee %q: %w", c.Bank.CreditFee, err)
	}
	limit, err := decimal.NewFromString(c.Bank.SuspiciousLimit)
	if err != nil {
		return bank.Config{}, fmt.Errorf("bank.suspicious_limit %q: %w", c.Bank.SuspiciousLimit, err)
	}

	cfg := bank.Config{
		InterestRate:    rate,
		CreditFee:       fee,
		SuspiciousLimit: limit,
		DepositTerm:     c.Bank.DepositTerm,
	}
	if cfg.DepositTerm == 0 {
		cfg.DepositTerm = bank.DefaultDepositTerm
	}
	if err := cfg.Validate(); err != nil {
		return bank.Config{}, err
	}
	return cfg, nil
}

func (c *Config) ClockStart() (time.Time, error) {
	if c.Clock.Start == "" {
		return time.Parse(time.RFC3339, DefaultClockStart)
	}
	t, err := time.Parse(time.RFC3339, c.Clock.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("clock.start %q: %w", c.Clock.Start, err)
	}
	return t, nil
}

func (c *Config) ClockStep() time.Duration {
	if c.Clock.Step <= 0 {
		return 24 * time.Hour
	}
	return c.Clock.Step
}

// LogLevel maps log.level onto pterm's levels; unknown names mean info.
func (c *Config) LogLevel() pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "disabled", "off", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}
