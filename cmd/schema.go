package cmd

import (
	"fmt"

	"github.com/lokitools/schema/hookcfg"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for hook registration files",
		Long: `Generates the JSON Schema that 'lokischema check' validates configurations
against. Useful for wiring editor completion and validation for
.pre-commit-config.yaml files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hookcfg.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
