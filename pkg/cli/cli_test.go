package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorFunctions(t *testing.T) {
	defer SetColor(colorEnabled)

	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Green", Green, "\033[32m"},
		{"Yellow", Yellow, "\033[33m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetColor(true)
			got := tt.fn("hello")
			if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, "\033[0m") {
				t.Errorf("%s(hello) = %q", tt.name, got)
			}

			SetColor(false)
			if got := tt.fn("hello"); got != "hello" {
				t.Errorf("%s with color disabled = %q, want plain", tt.name, got)
			}
		})
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "HOSTNAME", "PORT")
	tbl.Row("Lobby-AP1", "Gi1/0/1")
	tbl.Row("Lobby-AP2", "Gi1/0/2")
	tbl.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "HOSTNAME") || !strings.HasPrefix(lines[1], "--------") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}
	if strings.Index(lines[0], "PORT") != strings.Index(lines[2], "Gi1/0/1") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTable_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewTableTo(&buf, "A", "B").Flush()
	if buf.Len() != 0 {
		t.Errorf("empty table wrote %q", buf.String())
	}
}
