// Command mediainfo reads technical metadata from media files through
// libmediainfo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/mediainfo"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded by the root command before any subcommand runs.
	cfg *cliConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "mediainfo",
	Short:         "Inspect media files with libmediainfo",
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `mediainfo opens media files through the native MediaInfo library and
prints the requested stream properties as text, JSON or YAML.

The library is located through --lib, the config file, MEDIAINFO_LIB_PATH,
MEDIAINFO_LIB_DIR or the system library paths.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = newLogger(logLevel)
		if err != nil {
			return err
		}
		mediainfo.SetLogger(log)

		cfg, err = loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return cfg.applyFlags(cmd.Flags())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("lib", "", "Path to libmediainfo")
	rootCmd.PersistentFlags().String("encoding", "", "Force encoding instead of probing: utf-32, utf-16, ansi")
	rootCmd.PersistentFlags().String("narrow-charset", "", "IANA charset for the narrow entry points (default UTF-8)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
