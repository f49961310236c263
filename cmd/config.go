package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/Ahananian1/air-quality-explorer/internal/config"
	"github.com/Ahananian1/air-quality-explorer/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set aqx configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", c.DataPath)
		fmt.Fprintf(out, "listen_addr: %s\n", c.ListenAddr)
		fmt.Fprintf(out, "default_countries: %s\n", strings.Join(c.DefaultCountries, ", "))
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "histogram_bins: %d\n", c.HistogramBins)
		fmt.Fprintf(out, "max_table_rows: %d\n", c.MaxTableRows)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.XLSXSheet != "" {
			fmt.Fprintf(out, "xlsx_sheet: %s\n", c.XLSXSheet)
		}
		if len(c.CORSOrigins) > 0 {
			fmt.Fprintf(out, "cors_origins: %s\n", strings.Join(c.CORSOrigins, ", "))
		}
		fmt.Fprintf(out, "shutdown_timeout_sec: %d\n", c.ShutdownTimeoutSec)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the file alone so flag and env overrides are not persisted.
		c, err := cfgpkg.LoadStored(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "data_path":
			c.DataPath = val
		case "listen_addr":
			c.ListenAddr = val
		case "default_countries":
			c.DefaultCountries = splitList(val)
		case "cors_origins":
			c.CORSOrigins = splitList(val)
		case "top_n", "histogram_bins", "max_table_rows", "shutdown_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "top_n":
				c.TopN = i
			case "histogram_bins":
				if i == 0 {
					return fmt.Errorf("histogram_bins must be positive")
				}
				c.HistogramBins = i
			case "max_table_rows":
				c.MaxTableRows = i
			case "shutdown_timeout_sec":
				c.ShutdownTimeoutSec = i
			}
		case "delimiter":
			prev := c.Delimiter
			c.Delimiter = val
			if _, err := c.DelimiterRune(); err != nil {
				c.Delimiter = prev
				return err
			}
		case "xlsx_sheet":
			c.XLSXSheet = val
		case "log_level", "log_format":
			level, format := c.LogLevel, c.LogFormat
			if key == "log_level" {
				level = val
			} else {
				format = val
			}
			if err := logging.Validate(level, format); err != nil {
				return err
			}
			c.LogLevel, c.LogFormat = level, format
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses a comma-separated value; an empty string clears the list.
func splitList(val string) []string {
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
