package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ahananian1/air-quality-explorer/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath         string   `mapstructure:"data_path" yaml:"data_path"`
	ListenAddr       string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	DefaultCountries []string `mapstructure:"default_countries" yaml:"default_countries"`
	TopN             int      `mapstructure:"top_n" yaml:"top_n"`
	HistogramBins    int      `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	MaxTableRows     int      `mapstructure:"max_table_rows" yaml:"max_table_rows"`
	// Input parsing
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	XLSXSheet string `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	CORSOrigins        []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultCountries preselected on the dashboard's first visit.
var DefaultCountries = []string{
	"United States of America", "China", "Brazil", "Italy", "Russian Federation", "France",
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".aqx"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.aqx/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env (.env included) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()
	return load(cfgFile, true)
}

// LoadStored reads only the config file over the defaults, ignoring the
// environment. It is the base for edits that are saved back to disk.
func LoadStored(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, env bool) (*Global, error) {
	v := viper.New()
	if env {
		v.SetEnvPrefix("AQX")
		v.AutomaticEnv()
	}

	v.SetDefault("data_path", "air_quality_index.csv")
	v.SetDefault("listen_addr", "127.0.0.1:8080")
	v.SetDefault("default_countries", DefaultCountries)
	v.SetDefault("top_n", 10)
	v.SetDefault("histogram_bins", 20)
	v.SetDefault("max_table_rows", 500)
	v.SetDefault("delimiter", "")
	v.SetDefault("xlsx_sheet", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("shutdown_timeout_sec", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune maps the configured delimiter name to a rune; 0 means
// choose by file extension.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab')", c.Delimiter)
}
