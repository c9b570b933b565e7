package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/classmeta/cmd/classmeta/internal/display"
)

var describeOutputFormat string

var describeCmd = &cobra.Command{
	Use:   "describe <alias>",
	Short: "Show the metadata of one class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := display.CheckFormat(describeOutputFormat); err != nil {
			return err
		}
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		class, ok := reg.ClassForAlias(args[0])
		if !ok {
			return fmt.Errorf("no class registered as %q", args[0])
		}
		d, err := reg.Describe(class)
		if err != nil {
			return err
		}

		if strings.EqualFold(describeOutputFormat, "json") {
			return display.JSON(cmd.OutOrStdout(), d)
		}
		return display.TypeDetail(cmd.OutOrStdout(), d)
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeOutputFormat, "format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(describeCmd)
}
