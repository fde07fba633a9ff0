package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"salc/internal/diag"
	"salc/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("лит s := \"незакрытая строка\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.sal", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 12, End: uint32(len(content) - 1)},
		"unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.sal"},
		{"Relative path", PathModeRelative, "test.sal"},
		{"Basename only", PathModeBasename, "test.sal:1:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "LEX1002") {
				t.Error("Expected LEX1002 code in output")
			}
		})
	}
}

// TestPrettyCaretCountsRunes: подчёркивание стоит под кириллическим идентификатором.
func TestPrettyCaretCountsRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("цел икс := игрек\n")
	fileID := fs.AddVirtual("prog.sal", content)
	start := uint32(strings.Index(string(content), "игрек"))
	end := start + uint32(len("игрек"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: start, End: end}, `identifier "игрек" not found`))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, source and caret lines, got:\n%s", buf.String())
	}
	if lines[0] != `prog.sal:1:12: ERROR SEM3001: identifier "игрек" not found` {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1 | цел икс := игрек" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "  |            ^~~~~" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("цел x\nцел x\n")
	fileID := fs.AddVirtual("test.sal", content)

	bag := diag.NewBag(4)
	d := diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: fileID, Start: 16, End: 17}, `"x" is already declared`)
	d = d.WithNote(source.Span{File: fileID, Start: 7, End: 8}, "previous declaration")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()
	if !strings.Contains(output, "note: test.sal:1:5: previous declaration") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden without ShowNotes, got:\n%s", buf.String())
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("цел a\nцел b\nвывод c\n")
	fileID := fs.AddVirtual("ctx.sal", content)
	start := uint32(strings.Index(string(content), "c\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: start, End: start + 1}, "not found"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	output := buf.String()
	if !strings.Contains(output, "2 | цел b") || !strings.Contains(output, "3 | вывод c") {
		t.Fatalf("expected two context lines, got:\n%s", output)
	}
	if strings.Contains(output, "1 | цел a") {
		t.Fatalf("unexpected extra context, got:\n%s", output)
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.sal", []byte("вывод y\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: 11, End: 12}, "identifier not found"))

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if got, want := buf.String(), "error SEM3001 a.sal:1:7 identifier not found\n"; got != want {
		t.Fatalf("Short = %q, want %q", got, want)
	}
}
