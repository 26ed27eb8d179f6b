package ingest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadTable_CSVComma(t *testing.T) {
	t.Parallel()

	content := []byte("date,sku,title,qty,revenue\n2025-10-20,A1,Widget,2,100\n")
	rows, err := ReadTable(content, "sales.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "sku" || rows[1][2] != "Widget" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestReadTable_CSVSemicolon(t *testing.T) {
	t.Parallel()

	content := []byte("date;sku;title;qty;revenue\n2025-10-20;A1;Widget;2;100\n")
	rows, err := ReadTable(content, "export.CSV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || len(rows[1]) != 5 {
		t.Fatalf("semicolon CSV not split: %v", rows)
	}
	if rows[1][4] != "100" {
		t.Fatalf("unexpected revenue cell: %q", rows[1][4])
	}
}

func TestReadTable_CSVWindows1251(t *testing.T) {
	t.Parallel()

	utf := "date;sku;title;qty;revenue\n2025-10-20;A1;Кружка;2;100\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(utf))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	rows, err := ReadTable(encoded, "export.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[1][2] != "Кружка" {
		t.Fatalf("cp1251 title not decoded: %q", rows[1][2])
	}
}

func TestReadTable_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	header := []interface{}{"date", "sku", "title", "qty", "revenue"}
	row := []interface{}{"2025-10-20", "A1", "Widget", 2, 100}
	for i, v := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for i, v := range row {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	rows, err := ReadTable(buf.Bytes(), "sales.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "A1" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestReadTable_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"sales.json", "sales.txt", "sales"} {
		_, err := ReadTable([]byte("whatever"), name)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestSniffDelimiter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   rune
	}{
		{"a;b;c", ';'},
		{"a,b,c", ','},
		{"a\tb\tc", '\t'},
		{"date", ','},
	}
	for _, tc := range cases {
		if got := sniffDelimiter([]byte(tc.header + "\n1;2;3")); got != tc.want {
			t.Fatalf("%q: want %q got %q", tc.header, tc.want, got)
		}
	}
}

func TestSource(t *testing.T) {
	t.Parallel()

	if got := Source("a.csv"); got != "CSV" {
		t.Fatalf("want CSV got %s", got)
	}
	if got := Source("a.xlsx"); got != "XLSX" {
		t.Fatalf("want XLSX got %s", got)
	}
}

func TestReadTable_CSVLargeQuoted(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("date,sku,title,qty,revenue\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "2025-10-20,SKU%d,\"Widget, deluxe\",1,10\n", i)
	}
	rows, err := ReadTable([]byte(b.String()), "big.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 501 {
		t.Fatalf("expected 501 rows, got %d", len(rows))
	}
	if rows[1][2] != "Widget, deluxe" {
		t.Fatalf("quoted field broken: %q", rows[1][2])
	}
}
