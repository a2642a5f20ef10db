package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/schema"
)

var schemaJSON bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the vacancy fields per wizard step",
	Long:  "List the vacancy fields per wizard step, or print the record's JSON Schema with --json.",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "Print the JSON Schema of the vacancy record")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	reg := schema.Default()
	out := cmd.OutOrStdout()
	if schemaJSON {
		_, err := fmt.Fprintln(out, reg.JSONSchema())
		return err
	}

	lang := i18n.Normalize(language)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for step := schema.FirstStep; step <= schema.LastStep; step++ {
		fmt.Fprintf(tw, "%d. %s\n", int(step), i18n.Tr(step.Title(), lang))
		for _, key := range reg.KeysForStep(step) {
			spec, _ := reg.Spec(key)
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", key, spec.Requirement, i18n.Tr(spec.Label, lang))
		}
	}
	return tw.Flush()
}
