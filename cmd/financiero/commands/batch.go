package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
	"github.com/yourorg/financiero/internal/report"
)

var (
	reportDomain string
	reportHTML   string
	reportPDF    string
)

// batchLine is one calculation of a batch file.
type batchLine struct {
	Domain string         `json:"domain"`
	Fields finance.Fields `json:"fields"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Run a JSON-lines file of calculations and optionally export the history",
		Long: `Each input line is {"domain": "product", "fields": {"basePrice": "100", ...}}.
Failed lines are reported and skipped; they are never added to the history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			failed, err := runBatch(cmd, in)
			if err != nil {
				return err
			}
			if err := exportReports(cmd.Context(), finance.ParseDomain(reportDomain)); err != nil {
				return err
			}
			if failed > 0 {
				return &userError{msg: fmt.Sprintf("%d calculation(s) failed: %s", failed, finance.UserMessage)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reportDomain, "report-domain", string(finance.DomainProduct), "domain whose history is exported")
	cmd.Flags().StringVar(&reportHTML, "report-html", "", "write the history table as HTML to this path")
	cmd.Flags().StringVar(&reportPDF, "report-pdf", "", "write the history table as PDF to this path (needs Chromium)")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func runBatch(cmd *cobra.Command, in io.Reader) (failed int, err error) {
	out := cmd.OutOrStdout()
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var line batchLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			failed++
			fmt.Fprintf(out, "línea %d: JSON inválido: %v\n", lineNo, err)
			continue
		}
		d := finance.ParseDomain(line.Domain)
		rec, err := appCtx.svc.Calculate(d, line.Fields)
		if err != nil {
			failed++
			fmt.Fprintf(out, "línea %d: %s\n", lineNo, errorText(toUserError(err)))
			continue
		}
		fmt.Fprintf(out, "línea %d:\n", lineNo)
		if err := printRecord(out, rec); err != nil {
			return failed, err
		}
	}
	return failed, sc.Err()
}

func exportReports(ctx context.Context, d finance.Domain) error {
	if reportHTML == "" && reportPDF == "" {
		return nil
	}
	if !d.Calculable() {
		return fmt.Errorf("%w: %s", finance.ErrUnknownDomain, reportDomain)
	}
	table, err := appCtx.svc.Table(d)
	if err != nil {
		return err
	}
	renderer := report.NewRenderer(report.LoadConfig())

	var errs []error
	if reportHTML != "" {
		html, err := renderer.HTML(table)
		if err == nil {
			err = os.WriteFile(reportHTML, []byte(html), 0o644)
		}
		errs = append(errs, err)
	}
	if reportPDF != "" {
		pdf, err := renderer.PDF(ctx, table)
		if err == nil {
			err = os.WriteFile(reportPDF, pdf, 0o644)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
