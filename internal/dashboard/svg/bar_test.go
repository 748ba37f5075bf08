package svg

import (
	"strings"
	"testing"
)

func TestBarsRendersEachValue(t *testing.T) {
	out, err := Bars(720, 240, []float64{100, 60, 30}, []string{"Renda", "Despesas", "Lazer"}, BarOpts{Title: "Mês"})
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatal("output is not a complete svg document")
	}
	if got := strings.Count(out, "<rect"); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	for _, label := range []string{"Renda", "Despesas", "Lazer"} {
		if !strings.Contains(out, label) {
			t.Errorf("missing label %q", label)
		}
	}
	if !strings.Contains(out, "<title>Mês</title>") {
		t.Error("missing title element")
	}
}

func TestBarsValidation(t *testing.T) {
	if _, err := Bars(720, 240, nil, nil, BarOpts{}); err == nil {
		t.Error("empty values must fail")
	}
	if _, err := Bars(720, 240, []float64{1, 2}, []string{"only"}, BarOpts{}); err == nil {
		t.Error("label mismatch must fail")
	}
	if _, err := Bars(10, 10, []float64{1}, []string{"a"}, BarOpts{Padding: 40}); err == nil {
		t.Error("viewport smaller than padding must fail")
	}
}

func TestBarsDefaultsAndEscaping(t *testing.T) {
	out, err := Bars(0, 0, []float64{0}, []string{`<script>`}, BarOpts{})
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if !strings.Contains(out, "viewBox=\"0 0 720 240\"") {
		t.Error("zero dimensions should fall back to defaults")
	}
	if strings.Contains(out, "<script>") {
		t.Error("labels must be escaped")
	}
	// An all-zero series still draws a flat baseline chart.
	if !strings.Contains(out, "<rect") {
		t.Error("zero value should still emit its bar")
	}
}
