// Command faqpipe runs the corrector and mapper pipelines over local xlsx
// files, without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/faq-pipeline/internal/domain/corrector"
	"github.com/yanqian/faq-pipeline/internal/domain/mapper"
	"github.com/yanqian/faq-pipeline/internal/domain/table"
	"github.com/yanqian/faq-pipeline/internal/infra/matcher"
	"github.com/yanqian/faq-pipeline/internal/infra/workbook"
	"github.com/yanqian/faq-pipeline/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "faqpipe",
		Short:         "FAQ taxonomy correction and reconciliation pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCorrectCmd(), newMapCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newCorrectCmd() *cobra.Command {
	var (
		fileC     string
		fileD     string
		out       string
		faqColumn string
	)

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Parse FAQ hierarchies, enrich rows, and aggregate by key",
		RunE: func(cmd *cobra.Command, args []string) error {
			tableC, err := readWorkbook(fileC)
			if err != nil {
				return err
			}
			tableD, err := readWorkbook(fileD)
			if err != nil {
				return err
			}

			svc := corrector.NewService(corrector.Config{FAQColumn: faqColumn}, logger.New())
			res, err := svc.Run(cmd.Context(), corrector.RunRequest{FileC: tableC, FileD: tableD})
			if err != nil {
				return err
			}
			if err := writeWorkbook(out, res.Tables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sheets)\n", out, len(res.Tables))
			return nil
		},
	}

	cmd.Flags().StringVar(&fileC, "file-c", "", "path to the first input workbook")
	cmd.Flags().StringVar(&fileD, "file-d", "", "path to the second input workbook")
	cmd.Flags().StringVar(&out, "out", "faq_corrected.xlsx", "output workbook path")
	cmd.Flags().StringVar(&faqColumn, "faq-column", "", "FAQ text column (auto-detected when omitted)")
	_ = cmd.MarkFlagRequired("file-c")
	_ = cmd.MarkFlagRequired("file-d")
	return cmd
}

func newMapCmd() *cobra.Command {
	var (
		evaluation string
		dictionary string
		out        string
		faqColumn  string
		threshold  int
		noFallback bool
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Reconcile free-text FAQ records against a canonical dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			evalTable, err := readWorkbook(evaluation)
			if err != nil {
				return err
			}
			dictTable, err := readWorkbook(dictionary)
			if err != nil {
				return err
			}

			svc := mapper.NewService(mapper.Config{
				Threshold:          threshold,
				UseKeywordFallback: !noFallback,
				Keywords:           mapper.DefaultKeywords(),
				FAQColumn:          faqColumn,
			}, matcher.NewTokenSort(), logger.New())

			res, err := svc.Map(cmd.Context(), mapper.MapRequest{
				Evaluation: evalTable,
				Dictionary: dictTable,
			})
			if err != nil {
				return err
			}
			if err := writeWorkbook(out, []table.Named{
				{Name: "mapped", Table: res.Mapped},
				{Name: "unmapped", Table: res.Unmapped},
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d rows, %d fuzzy, %d keyword, %d unmapped\n",
				out, res.Stats.Total, res.Stats.Fuzzy, res.Stats.Keyword, res.Stats.Unmapped)
			return nil
		},
	}

	cmd.Flags().StringVar(&evaluation, "evaluation", "", "path to the evaluation workbook")
	cmd.Flags().StringVar(&dictionary, "dictionary", "", "path to the canonical dictionary workbook")
	cmd.Flags().StringVar(&out, "out", "faq_mapped.xlsx", "output workbook path")
	cmd.Flags().StringVar(&faqColumn, "faq-column", "", "evaluation FAQ text column (auto-detected when omitted)")
	cmd.Flags().IntVar(&threshold, "threshold", 80, "fuzzy acceptance cutoff in [0, 100]")
	cmd.Flags().BoolVar(&noFallback, "no-keyword-fallback", false, "disable the keyword fallback stage")
	_ = cmd.MarkFlagRequired("evaluation")
	_ = cmd.MarkFlagRequired("dictionary")
	return cmd
}

func readWorkbook(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t, err := workbook.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

func writeWorkbook(path string, tables []table.Named) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := workbook.Write(f, tables); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
