package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GabeHardgrave/dircrypt/internal/config"
	"github.com/GabeHardgrave/dircrypt/internal/events"
)

var rootCmd = &cobra.Command{
	Use:   "dircrypt",
	Short: "Encrypt or decrypt a directory tree under a password",
	Long: `Dircrypt encrypts or decrypts an entire directory tree: directory
names, file names, and file contents. The output is a hierarchy
isomorphic to the original, rooted in a fresh output directory.

Names and contents are sealed chunk by chunk with ChaCha20-Poly1305
under a key stretched from your password. Segments that cannot be
decrypted are substituted with sentinel names instead of aborting the
run.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

var (
	cfgFile     string
	logLevel    string
	logFormat   string
	workerCount int
	jsonOutput  bool

	cfg    *config.Config
	logger *events.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./dircrypt.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Log format: text, json")
	rootCmd.PersistentFlags().IntVarP(&workerCount, "workers", "w", 0,
		"Worker pool size (default: number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Emit the run summary as JSON")
}

func initApp(cmd *cobra.Command, args []string) error {
	loaded, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}

	// Flags beat file and environment.
	if cmd.Flags().Changed("workers") {
		loaded.Run.Workers = workerCount
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFormat != "" {
		loaded.Log.Format = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger = events.NewLogger(events.ParseLevel(cfg.Log.Level), cfg.Log.Format, os.Stderr)
	return nil
}

// Execute runs the CLI, exiting non-zero on a fatal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
