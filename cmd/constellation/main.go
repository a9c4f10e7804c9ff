package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/constellation/config"
	"github.com/lixenwraith/constellation/logging"
)

var (
	cfgPath  string
	logLevel string
	logFile  string
	seed     uint64

	loader    *config.Loader
	cfg       *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "constellation",
	Short: "Place the people you know as stars and fly between them",
	Long: `constellation flies a camera to each person in a roster. On arrival you
pick how close they are (inner, middle or outer), and the star settles into
that shell of your constellation. When everyone is placed the camera zooms
out to frame the whole sky, and manual review lets you orbit it freely.

Run without a subcommand to start the interactive terminal viewer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loader = config.NewLoader(cfgPath)

		v := loader.Viper()
		for key, flag := range map[string]string{"seed": "seed", "logLevel": "log-level", "logFile": "log-file"} {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}

		var err error
		cfg, err = loader.Load()
		if err != nil {
			return err
		}

		// The interactive viewer owns the terminal, so only headless commands log to stderr
		var console io.Writer
		if cmd == snapshotCmd {
			console = os.Stderr
		}
		logger, logCloser, err = logging.Setup(logging.Options{
			Level:   cfg.LogLevel,
			File:    cfg.LogFile,
			Console: console,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Info().Str("config", cfgPath).Uint64("seed", cfg.Seed).Int("roster", len(cfg.Roster)).Msg("configuration loaded")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewer()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal viewer (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewer()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (toml, yaml or json); watched for tuning changes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default from config)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Placement seed (default from config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
