package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks in the effective pipeline without running them",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	bindPipelineFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := resolveRegistry()
	if err != nil {
		return err
	}

	for _, def := range reg.Checks() {
		line := def.Name + ": " + def.Command
		if len(def.Args) > 0 {
			line += " " + strings.Join(def.Args, " ")
		}
		if def.Success != "" {
			line += " (" + string(def.Success) + ")"
		}
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}
