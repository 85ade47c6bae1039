package main

import (
	"errors"
	"fmt"

	"cxd/analyzer"
	"cxd/common/colorrange"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var input, output string
	var list bool
	cmd := &cobra.Command{
		Use:   "analyze NAME -i INPUT [-o OUTPUT]",
		Short: "Write the ranges found by an analyzer as a descriptor file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range analyzer.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("expected one analyzer name, options are: %v", analyzer.Names())
			}
			if input == "" {
				return errors.New(`required flag "input" not set`)
			}

			ranges, err := analyzer.Run(args[0], input)
			if err != nil {
				return err
			}
			if output == "" {
				return colorrange.Write(cmd.OutOrStdout(), ranges)
			}
			if err := colorrange.WriteFile(output, ranges); err != nil {
				return err
			}
			log.Infof("Wrote %d ranges to %s", len(ranges), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "File to analyze")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Descriptor file to write, stdout when empty")
	cmd.Flags().BoolVar(&list, "list", false, "List the available analyzers")
	return cmd
}
