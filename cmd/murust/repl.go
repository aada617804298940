package main

import (
	"os"

	"github.com/spf13/cobra"
)

func replCommand(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Interactive(os.Stdin)
}
