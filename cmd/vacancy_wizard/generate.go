package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/vacancy-wizard/internal/generate"
	"github.com/jonathan/vacancy-wizard/internal/observability"
)

var (
	generateKind   string
	generateTarget string
	generateUseLLM bool
)

var booleanCmd = &cobra.Command{
	Use:   "boolean <file-or-url>",
	Short: "Build a Boolean sourcing string from a job ad",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoolean,
}

var generateCmd = &cobra.Command{
	Use:   "generate <file-or-url>",
	Short: "Generate recruiting content from a job ad",
	Long: `Extract the vacancy from a job ad and let the configured LLM write one
kind of content: job_ad, interview_prep, email, persona, vacancy_profile or boolean.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateKind, "kind", "k", string(generate.KindJobAd), "Content kind to generate")
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "Email recipient (Candidate, Line Manager, HR, Finance)")
	generateCmd.Flags().BoolVar(&generateUseLLM, "llm", false, "Fill missing fields with the LLM before generating")
	rootCmd.AddCommand(booleanCmd)
	rootCmd.AddCommand(generateCmd)
}

func runBoolean(cmd *cobra.Command, args []string) error {
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

	sess, _, err := a.ingest(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), generate.BooleanSearch(sess.Snapshot()))
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	kind, err := generate.ParseKind(generateKind)
	if err != nil {
		return err
	}
	req := generate.Request{Kind: kind}
	if generateTarget != "" {
		if req.Target, err = generate.ParseEmailTarget(generateTarget); err != nil {
			return err
		}
	}

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

	sess, _, err := a.ingest(ctx, args[0])
	if err != nil {
		return err
	}
	if generateUseLLM {
		if err := a.llmExtract(ctx, sess); err != nil {
			return err
		}
	}
	req.Language = sess.Language()

	result, err := a.generator.Generate(ctx, sess.Snapshot(), req)
	if err != nil {
		return err
	}
	if result.Failed {
		return fmt.Errorf("generation failed: %s", result.Text)
	}
	observability.NewPrinter(cmd.OutOrStdout(), req.Language).PrintText(string(kind), result.Text)
	return nil
}
