package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	csvData := "id,name,role\nS100,Alice,Student\nS101,Bob,Student\n"
	table, err := Parse("students.csv", strings.NewReader(csvData), 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("headers = %v, want 3 columns", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got := Cell(table.Rows[0], 0); got != "S100" {
		t.Errorf("cell(0,0) = %q, want S100", got)
	}
}

func TestParseSkipRows(t *testing.T) {
	t.Parallel()

	// Four banner rows above the real header, as in college mark sheets.
	csvData := "VH College\nDept of AI & DS\nCIA-1 Marks\n\nS.No,VH NO,STUDENT NAME,21AI31T\n1,S100,Alice,37\n"
	table, err := Parse("marks.csv", strings.NewReader(csvData), 4)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := table.Column("VH NO", "VH NO"); err != nil {
		t.Fatalf("Column after skip: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	t.Parallel()

	if _, err := Parse("marks.pdf", strings.NewReader("x"), 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestColumnAliasDetection(t *testing.T) {
	t.Parallel()

	csvData := "S.No, reg no of student ,NAME OF THE STUDENT,SUBJECT CODE\n"
	table, err := Parse("arrears.csv", strings.NewReader(csvData), 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name    string
		field   string
		aliases []string
		want    int
		wantErr bool
	}{
		{name: "substring match on messy header", field: "VH NO", aliases: []string{"VH NO", "REG NO", "VHNO"}, want: 1},
		{name: "first alias wins over column order", field: "name", aliases: []string{"NAME OF THE STUDENT"}, want: 2},
		{name: "missing column is a typed error", field: "SEM NO", aliases: []string{"SEM NO"}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			idx, err := table.Column(tc.field, tc.aliases...)
			if tc.wantErr {
				var notFound *ColumnNotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("err = %v, want *ColumnNotFoundError", err)
				}
				if notFound.Field != tc.field {
					t.Fatalf("Field = %q, want %q", notFound.Field, tc.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("Column: %v", err)
			}
			if idx != tc.want {
				t.Fatalf("Column = %d, want %d", idx, tc.want)
			}
		})
	}
}

func TestParseMark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"37", 37.0},
		{"18.5", 18.5},
		{" 42 ", 42.0},
		{"AB", 0.0},
		{"ab", 0.0},
		{"", 0.0},
		{"NaN", 0.0},
		{"None", 0.0},
		{"N/A", 0.0},
		{"absent", 0.0}, // unparsable text also defaults, never errors
	}

	for _, tc := range tests {
		if got := ParseMark(tc.in); got != tc.want {
			t.Errorf("ParseMark(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSkipIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     string
		echoes []string
		want   bool
	}{
		{name: "normal roll number", id: "S100", want: false},
		{name: "empty", id: "", want: true},
		{name: "whitespace only", id: "   ", want: true},
		{name: "pandas nan", id: "nan", want: true},
		{name: "upper nan", id: "NAN", want: true},
		{name: "header echoed in data", id: "REG NO", echoes: []string{"REG NO"}, want: true},
		{name: "serial header echo", id: "S.No", echoes: []string{"S.No"}, want: true},
		{name: "roll containing digits not echo", id: "VH21AI001", echoes: []string{"REG NO"}, want: false},
		{name: "roll sharing echo prefix survives", id: "VH1", echoes: []string{"VH NO", "REG NO"}, want: false},
		{name: "reg-prefixed roll survives", id: "REG2024001", echoes: []string{"REG NO"}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := SkipIdentifier(tc.id, tc.echoes...); got != tc.want {
				t.Fatalf("SkipIdentifier(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestCellRaggedRows(t *testing.T) {
	t.Parallel()

	row := []string{"S100", "Alice"}
	if got := Cell(row, 5); got != "" {
		t.Fatalf("Cell out of range = %q, want empty", got)
	}
	if got := CellOr(row, 5, "N/A"); got != "N/A" {
		t.Fatalf("CellOr out of range = %q, want N/A", got)
	}
	if got := CellOr(row, 1, "N/A"); got != "Alice" {
		t.Fatalf("CellOr = %q, want Alice", got)
	}
}
