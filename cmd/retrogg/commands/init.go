package commands

import (
	"fmt"

	"github.com/marmos91/retrogg/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample retrogg configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/retrogg/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  retrogg init

  # Initialize with custom path
  retrogg init --config /etc/retrogg/config.yaml

  # Force overwrite existing config
  retrogg init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Create an account with: retrogg user add")
	fmt.Println("  3. Start the server with: retrogg start")
	fmt.Printf("  4. Or specify custom config: retrogg start --config %s\n", configPath)
	fmt.Println("\nClient note:")
	fmt.Println("  Stock Gadu-Gadu 6.0 clients discover the messaging port over plain")
	fmt.Println("  HTTP on port 80, so point 'hostname' at a name that resolves from")
	fmt.Println("  the client side.")

	return nil
}
