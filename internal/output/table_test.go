package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	// Style assertions below compare raw text.
	SetNoColor(true)
}

func TestTableRender(t *testing.T) {
	table := NewTable("TIME", "MODE", "INPUT")
	table.AddRow("2026-08-30 15:04", "url", "https://example.com/ep1")
	table.AddRow("2026-08-29 09:30", "transcript", "这是一段转写文本")

	got := table.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule, and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "TIME") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("rule line = %q", lines[1])
	}
}

func TestTableCJKAlignment(t *testing.T) {
	table := NewTable("NAME", "NOTE")
	table.AddRow("短", "a")
	table.AddRow("longer", "b")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	// Both data rows must place the second column at the same display offset.
	row1 := lines[2]
	row2 := lines[3]
	if lipgloss.Width(row1[:strings.LastIndex(row1, "a")]) != lipgloss.Width(row2[:strings.LastIndex(row2, "b")]) {
		t.Errorf("columns misaligned:\n%q\n%q", row1, row2)
	}
}

func TestTableMissingCells(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only")

	got := table.Render()
	if !strings.Contains(got, "only") {
		t.Errorf("row lost: %q", got)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("headerless table should render empty, got %q", got)
	}
}
