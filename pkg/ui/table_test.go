package ui

import (
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Month"},
		{Header: "File", Width: 10},
		{Header: "Size", Align: "right"},
	})
	table.AddRow("01", "regional-global-daily-2020-01-01.csv", "12 B")
	table.AddRow("02", "short.csv")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Month") || !strings.Contains(lines[0], "Size") {
		t.Errorf("header line missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[2], "regional-global-daily-2020-01-01.csv") {
		t.Errorf("row missing file name: %q", lines[2])
	}
}

func TestTable_RenderEmpty(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		s, align string
		width    int
		expected string
	}{
		{"ab", "left", 4, "ab  "},
		{"ab", "right", 4, "  ab"},
		{"ab", "center", 5, " ab  "},
		{"abcdef", "left", 3, "abcdef"},
	}

	for _, tt := range tests {
		got := padString(tt.s, tt.width, tt.align)
		if got != tt.expected {
			t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.expected)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestProgressBar_Render(t *testing.T) {
	bar := NewProgressBar(20)

	if out := bar.Render(6, 12); out == "" {
		t.Error("expected non-empty bar")
	}
	if out := bar.Render(0, 0); out == "" {
		t.Error("expected non-empty bar for empty total")
	}
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		outcome string
		icon    string
	}{
		{"ok", IconSuccess},
		{"failed", IconError},
		{"skipped", IconSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			out := FormatOutcome(tt.outcome, "detail text")
			if !strings.Contains(out, tt.icon) || !strings.Contains(out, "detail text") {
				t.Errorf("FormatOutcome(%q) = %q", tt.outcome, out)
			}
		})
	}
}
