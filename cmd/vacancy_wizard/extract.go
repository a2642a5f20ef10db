package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/vacancy-wizard/internal/export"
	"github.com/jonathan/vacancy-wizard/internal/observability"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/session"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

var (
	extractUseLLM bool
	extractStep   int
	extractOut    string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file-or-url>",
	Short: "Extract a vacancy record from a job ad",
	Long: `Read a job ad from a pdf, docx or txt file or from a URL, extract the
vacancy fields and print them. --out writes the record as .md, .json or .xlsx.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractUseLLM, "llm", false, "Fill the remaining fields with the configured LLM")
	extractCmd.Flags().IntVar(&extractStep, "step", 0, "Also render wizard step 1-10 with its suggestions")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write the record to this file (.md, .json or .xlsx)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out, cfg.Session.Language)

	sess, res, err := a.ingest(ctx, args[0])
	if err != nil {
		return err
	}
	printer.PrintIngest(res)

	if extractUseLLM {
		if err := a.llmExtract(ctx, sess); err != nil {
			return err
		}
	}

	if extractStep != 0 {
		step, err := schema.ParseStep(extractStep)
		if err != nil {
			return err
		}
		view, err := sess.RenderStep(step, nil)
		if err != nil {
			return err
		}
		printer.PrintStep(view)
	}

	record := sess.Snapshot()
	printer.PrintRecord(record, a.registry)

	if extractOut != "" {
		if err := writeRecord(extractOut, record, a.registry, sess.Language()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Record written to %s\n", extractOut)
	}
	return nil
}

// llmExtract merges LLM-detected fields into sess without overwriting.
func (a *app) llmExtract(ctx context.Context, sess *session.Session) error {
	if a.llm == nil {
		return fmt.Errorf("--llm needs LLM credentials for provider %q", a.cfg.LLM.Provider)
	}
	text := sess.Snapshot().String(types.RawTextKey)
	fields, err := a.llm.Extract(ctx, text, sess.Language())
	if err != nil {
		a.metrics.ExternalFailure("llm")("extract", err)
		return fmt.Errorf("LLM extraction failed: %w", err)
	}
	filled := sess.MergeFields("llm", fields)
	a.logger.Info("LLM extraction merged", "detected", len(fields), "filled", len(filled))
	return nil
}

// writeRecord exports record in the format named by path's extension.
func writeRecord(path string, record types.Record, reg *schema.Registry, lang string) error {
	var buf bytes.Buffer
	if err := encodeRecord(&buf, filepath.Ext(path), record, reg, lang); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encodeRecord(w io.Writer, ext string, record types.Record, reg *schema.Registry, lang string) error {
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		_, err := io.WriteString(w, export.Markdown(record, reg))
		return err
	case ".json":
		data, err := export.JSON(record, reg)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case ".xlsx":
		return export.WriteXLSX(w, record, reg, lang)
	default:
		return fmt.Errorf("unsupported output format %q (use .md, .json or .xlsx)", ext)
	}
}
