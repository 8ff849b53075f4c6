// Package report renders calculation history as printable HTML tables and
// PDF documents.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrEmptyTable is returned when a table has no columns to render.
var ErrEmptyTable = errors.New("report table has no columns")

// Table is a titled grid of preformatted cells.
type Table struct {
	Title       string
	Columns     []string
	Rows        [][]string
	GeneratedAt time.Time
}

// Renderer turns tables into HTML and, through headless Chromium, into PDF.
type Renderer struct {
	cfg  Config
	tmpl *template.Template
	loc  *time.Location
}

func NewRenderer(cfg Config) Renderer {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	return Renderer{
		cfg:  cfg,
		tmpl: template.Must(template.New("report").Parse(htmlTemplate)),
		loc:  loc,
	}
}

// HTML renders t as a standalone document. Cell text is escaped.
func (r Renderer) HTML(t Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", ErrEmptyTable
	}
	generated := t.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, struct {
		Table
		Lang      string
		Generated string
	}{
		Table:     t,
		Lang:      r.cfg.Locale,
		Generated: generated.In(r.loc).Format("2006/01/02 15:04"),
	}); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// PDF prints the HTML rendition of t. It fails when Chromium cannot be
// started so callers can fall back to HTML.
func (r Renderer) PDF(ctx context.Context, t Table) ([]byte, error) {
	html, err := r.HTML(t)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.cfg.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.cfg.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := r.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).WithLandscape(len(t.Columns) > 5).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdf, nil
}

const htmlTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 24px; color: #0f172a; }
    h1 { margin: 0 0 4px; font-size: 20px; }
    .meta { font-size: 12px; color: #475569; margin-bottom: 16px; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 6px 8px; border-bottom: 1px solid #e2e8f0; text-align: left; font-size: 13px; }
    th { background: #f8fafc; }
    .empty { color: #64748b; font-style: italic; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">Generado: {{.Generated}} · Registros: {{len .Rows}}</div>
  <table>
    <thead>
      <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
    {{- range .Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- else}}
      <tr><td class="empty" colspan="{{len .Columns}}">Sin registros</td></tr>
    {{- end}}
    </tbody>
  </table>
</body>
</html>
`
