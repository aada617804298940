package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/murust/session"
)

var (
	failFast bool
	echoFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run every line of FILE as one session (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first line that fails")
	runCmd.Flags().BoolVar(&echoFlag, "echo", false, "Print each line after the prompt before its result")
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func runScript(cmd *cobra.Command, name string, opts session.ScriptOptions) {
	in, err := openInput(name)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't open script")
	}
	defer in.Close()

	s, err := openSession(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't start session")
	}
	defer s.Close()

	failed, err := s.Script(in, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Error reading script")
	}
	log.Debug().Int("failed", failed).Str("file", name).Msg("script done")
	if failed > 0 {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("%s: %d line(s) failed", name, failed))
		s.Close()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string) {
	runScript(cmd, args[0], session.ScriptOptions{Echo: echoFlag, FailFast: failFast})
}
