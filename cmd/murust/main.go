package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/murust/session"
)

var (
	logLevel   string
	configPath string
	promptFlag string
	colorFlag  string
	storeFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "murust",
	Short: "Interpreter for µRust, a tiny Rust-like language with a visible memory model",
	Long: `murust evaluates µRust instructions one line at a time against a single
memory made of a stack of namespaces and a first-fit heap.

Without a subcommand it starts an interactive session.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'warn'\n", logLevel)
			level = zerolog.WarnLevel
		}
		zerolog.SetGlobalLevel(level)
	},
	Args: cobra.NoArgs,
	RunE: replCommand,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "warn", "Set log level (trace, debug, info, warn, error)")
	pf.StringVar(&configPath, "config", "", "Load settings from a .toml or .yaml file")
	pf.StringVar(&promptFlag, "prompt", "", "Prompt shown before each line")
	pf.StringVar(&colorFlag, "color", "", "Colorize output: auto, always or never")
	pf.StringVar(&storeFlag, "store", "", "SQLite file for undo snapshots (in memory when empty)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(traceCmd)
}

// loadConfig reads --config if given and applies the flags the user set on
// top of it.
func loadConfig(cmd *cobra.Command) (session.Config, error) {
	cfg := session.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = session.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("prompt") {
		cfg.Prompt = promptFlag
	}
	if flags.Changed("color") {
		cfg.Color = colorFlag
	}
	if flags.Changed("store") {
		cfg.Store = storeFlag
	}
	return cfg, cfg.Validate()
}

func openSession(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return session.New(cfg, os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
