package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/vacancy-wizard/internal/observability"
)

var taxonomyLimit int

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Query the ESCO skills and occupations taxonomy",
}

var taxonomySkillsCmd = &cobra.Command{
	Use:   "skills <query>",
	Short: "Search ESCO skills by free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaxonomy(cmd, strings.Join(args, " "), false)
	},
}

var taxonomyTitleCmd = &cobra.Command{
	Use:   "title <job title>",
	Short: "Suggest ESCO skills and tasks for a job title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaxonomy(cmd, strings.Join(args, " "), true)
	},
}

func init() {
	taxonomyCmd.PersistentFlags().IntVarP(&taxonomyLimit, "limit", "n", 10, "Maximum results per list")
	taxonomyCmd.AddCommand(taxonomySkillsCmd)
	taxonomyCmd.AddCommand(taxonomyTitleCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, query string, byTitle bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a := newApp(ctx, cfg, cmd.ErrOrStderr())
	defer a.close()
	if a.taxonomy == nil {
		return errors.New("ESCO lookups are disabled (taxonomy.enabled=false)")
	}

	lang := cfg.Taxonomy.Language
	printer := observability.NewPrinter(cmd.OutOrStdout(), cfg.Session.Language)
	if !byTitle {
		printer.PrintList("skills: "+query, a.taxonomy.SearchSkills(ctx, query, lang, taxonomyLimit))
		return nil
	}
	s := a.taxonomy.SuggestForTitle(ctx, query, lang, taxonomyLimit)
	printer.PrintList("skills: "+query, s.Skills)
	printer.PrintList("tasks: "+query, s.Tasks)
	return nil
}
