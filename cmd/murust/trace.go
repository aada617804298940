package main

import (
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/murust/session"
)

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "Run FILE, printing each line and the memory after every instruction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runScript(cmd, args[0], session.ScriptOptions{Echo: true, Trace: true, FailFast: failFast})
	},
}

func init() {
	traceCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first line that fails")
}
