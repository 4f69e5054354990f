// Command connstats exposes the connectivity statistics object of a device
// over HTTP and Prometheus.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irctrakz/connstats/pkg/config"
	"github.com/irctrakz/connstats/pkg/logging"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "connstats",
	Short:         "Connectivity statistics agent",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		data, err := cfg.Marshal("." + format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (.json, .yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	configCmd.Flags().StringP("format", "f", "yaml", "Output format: \"yaml\" or \"json\"")

	rootCmd.AddCommand(serveCmd, configCmd)
}

// loadConfig layers defaults, the config file and the environment, then
// validates the result and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		if err := config.LoadFromFile(configPath, cfg); err != nil {
			return nil, err
		}
	}
	config.LoadFromEnv(cfg)
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyLogging(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Fatalf("%v", err)
	}
}
