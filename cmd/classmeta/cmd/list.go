package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/classmeta/cmd/classmeta/internal/display"
)

var listOutputFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered classes",
	Long: `List every class the application's modules register, in registration
order.

Examples:
  classmeta list                 # table format
  classmeta list --format json   # JSON format`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := display.CheckFormat(listOutputFormat); err != nil {
			return err
		}
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		types := reg.Catalog()
		if strings.EqualFold(listOutputFormat, "json") {
			return display.JSON(cmd.OutOrStdout(), struct {
				Types any `json:"types"`
				Count int `json:"count"`
			}{types, len(types)})
		}
		return display.TypesTable(cmd.OutOrStdout(), types)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(listCmd)
}
