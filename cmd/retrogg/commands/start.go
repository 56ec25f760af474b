package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/internal/telemetry"
	"github.com/marmos91/retrogg/pkg/adapter/gg"
	"github.com/marmos91/retrogg/pkg/api"
	"github.com/marmos91/retrogg/pkg/config"
	"github.com/marmos91/retrogg/pkg/messenger"
	"github.com/marmos91/retrogg/pkg/metrics"
	ggprom "github.com/marmos91/retrogg/pkg/metrics/prometheus"
	"github.com/marmos91/retrogg/pkg/store"
	"github.com/spf13/cobra"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the retrogg server",
	Long: `Start the retrogg server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/retrogg/config.yaml.

Examples:
  # Start in background (default)
  retrogg start

  # Start in foreground
  retrogg start --foreground

  # Start with custom config file
  retrogg start --config /etc/retrogg/config.yaml

  # Start with environment variable overrides
  GG_LOGGING_LEVEL=DEBUG retrogg start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/retrogg/retrogg.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/retrogg/retrogg.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "retrogg",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "retrogg",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	printBanner(Version)
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}

	// Initialize metrics (if enabled)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Open the database and run migrations
	st, err := store.New(&store.Config{DSN: cfg.DB})
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Store close error", "error", err)
		}
	}()
	logger.Info("Store initialized", "db", cfg.DB, "backend", storeBackend(cfg.DB))

	// In-memory hubs shared by every session
	presence := messenger.NewPresenceHub()
	dispatcher := messenger.NewDispatcher(st)

	// Domain metrics collector (nil when metrics are disabled; every
	// method tolerates a nil receiver)
	ggMetrics := ggprom.NewGGMetrics()

	// GG protocol adapter
	ggAdapter := gg.New(gg.Config{
		BindAddress:     cfg.Bind,
		Port:            cfg.GGPort,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, st, presence, dispatcher, ggMetrics)

	// HTTP bootstrap service
	apiServer := api.NewServer(api.Config{
		Bind:     cfg.Bind,
		Port:     cfg.HTTPPort,
		Hostname: cfg.Hostname,
		GGPort:   cfg.GGPort,
		HostIP:   cfg.HostIP,
		Version:  Version,
	}, st, presence)

	// Retention sweeper (if enabled)
	if cfg.Cleanup.Enabled {
		sweeper := store.NewSweeper(st, store.SweeperConfig{
			Interval:  cfg.Cleanup.Interval,
			Retention: cfg.Cleanup.Retention,
		})
		go sweeper.Run(ctx)
	}

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Start both listeners; the first failure takes the process down
	serverDone := make(chan error, 2)
	go func() { serverDone <- ggAdapter.Serve(ctx) }()
	go func() { serverDone <- apiServer.Start(ctx) }()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.",
		"gg_port", cfg.GGPort, "http_port", cfg.HTTPPort)

	var runErr error
	remaining := 2
	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			runErr = err
		}
		remaining = 1
		cancel()
	}

	// Wait for the listeners to shut down gracefully
	for i := 0; i < remaining; i++ {
		if err := <-serverDone; err != nil && runErr == nil {
			logger.Error("Server shutdown error", "error", err)
			runErr = err
		}
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// storeBackend names the database backend selected by the db config key.
func storeBackend(dsn string) string {
	cfg := store.Config{DSN: dsn}
	if cfg.IsPostgres() {
		return "postgres"
	}
	return "sqlite"
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// startDaemon starts the server as a background daemon process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()

	// Create state directory if it doesn't exist
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Set default PID file if not specified
	pidPath := pidFile
	if pidPath == "" {
		pidPath = filepath.Join(stateDir, "retrogg.pid")
	}

	// Check if already running
	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				// Check if process is still running
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("retrogg is already running (PID %d)\nUse 'retrogg stop' to stop the running instance", pid)
					}
				}
			}
		}
		// Stale PID file, remove it
		_ = os.Remove(pidPath)
	}

	// Set default log file if not specified
	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(stateDir, "retrogg.log")
	}

	// Get the executable path
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Build arguments for the daemon process
	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	// Create the daemon process
	cmd := exec.Command(executable, daemonArgs...)

	// Open log file for stdout/stderr
	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cmd.Stdout = logFileHandle
	cmd.Stderr = logFileHandle

	// Detach from parent process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	// Start the daemon
	if err := cmd.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFileHandle.Close()

	fmt.Printf("retrogg started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'retrogg stop' to stop the server")
	fmt.Println("Use 'retrogg status' to check server status")

	return nil
}
