package report

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderer_HTML(t *testing.T) {
	r := NewRenderer(Config{TimeZone: "UTC", Locale: "es"})
	html, err := r.HTML(Table{
		Title:       "FinanciApp · Cálculos de Productos",
		Columns:     []string{"#", "Producto", "Precio con IVA"},
		Rows:        [][]string{{"1", "Widget", "119.00"}, {"2", "<b>Tornillo</b>", "2.38"}},
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{
		`<html lang="es">`,
		"<h1>FinanciApp · Cálculos de Productos</h1>",
		"<th>Precio con IVA</th>",
		"<td>119.00</td>",
		"&lt;b&gt;Tornillo&lt;/b&gt;",
		"2026/03/01 09:30",
		"Registros: 2",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() missing %q", want)
		}
	}
	if strings.Contains(html, "<b>Tornillo</b>") {
		t.Error("HTML() did not escape cell text")
	}
}

func TestRenderer_HTMLEmptyRows(t *testing.T) {
	r := NewRenderer(Config{TimeZone: "UTC"})
	html, err := r.HTML(Table{Title: "Vacío", Columns: []string{"#", "Fecha"}})
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(html, `colspan="2">Sin registros`) {
		t.Errorf("HTML() missing empty-state row:\n%s", html)
	}
}

func TestRenderer_HTMLNoColumns(t *testing.T) {
	r := NewRenderer(Config{})
	if _, err := r.HTML(Table{Title: "x"}); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("HTML() error = %v, want ErrEmptyTable", err)
	}
}

func TestNewRenderer_BadTimeZoneFallsBackToUTC(t *testing.T) {
	r := NewRenderer(Config{TimeZone: "Nowhere/Invalid"})
	if r.loc != time.UTC {
		t.Fatalf("loc = %v, want UTC", r.loc)
	}
}
