package main

import (
	"cxd/common/parser"

	"github.com/spf13/cobra"
)

func newGenconfigCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "genconfig -c PATH",
		Short: "Write the default configuration, as TOML when PATH ends in .toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return parser.GenerateConfig(path)
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "Path of the configuration to write")
	cmd.MarkFlagRequired("config")
	return cmd
}
