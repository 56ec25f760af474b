package config

import (
	"fmt"

	"github.com/marmos91/retrogg/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the retrogg configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  retrogg config validate

  # Validate specific config file
  retrogg config validate --config /etc/retrogg/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	// Load and validate configuration
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional validation checks
	var warnings []string

	// Stock clients resolve the hub without a port
	if cfg.HTTPPort != 80 {
		warnings = append(warnings, fmt.Sprintf("http_port is %d - stock GG 6.0 clients expect the hub on port 80", cfg.HTTPPort))
	}

	// The default hostname only works with a matching hosts entry
	if cfg.Hostname == config.DefaultHostname {
		warnings = append(warnings, "hostname is the default - clients must be able to resolve it")
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Database:        %s\n", cfg.DB)
	fmt.Printf("  Messaging port:  %d\n", cfg.GGPort)
	fmt.Printf("  HTTP port:       %d\n", cfg.HTTPPort)
	fmt.Printf("  Hostname:        %s\n", cfg.Hostname)
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)

	return nil
}
