package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"salc/internal/diag"
	"salc/internal/source"
	"salc/internal/token"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("алг f() нач\n  вывод у\nкон\n")
	fileID := fs.AddVirtual("test.sal", content)
	start := uint32(bytes.Index(content, []byte("у\n")))

	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: start, End: start + 2}, `identifier "у" not found`)
	bag.Add(d.WithNote(source.Span{File: fileID, Start: 0, End: 6}, "inside this algorithm"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", got.Severity)
	}
	if got.Code != "SEM3001" {
		t.Errorf("Expected code=SEM3001, got %s", got.Code)
	}
	if got.Category != "name resolution" {
		t.Errorf("Expected category=name resolution, got %s", got.Category)
	}
	if got.Location.File != "test.sal" {
		t.Errorf("Expected file=test.sal, got %s", got.Location.File)
	}
	if got.Location.StartLine != 2 || got.Location.StartCol != 9 {
		t.Errorf("Expected 2:9, got %d:%d", got.Location.StartLine, got.Location.StartCol)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "inside this algorithm" {
		t.Errorf("Expected one note, got %+v", got.Notes)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.sal", []byte("x y z"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "unexpected")
		bag.Add(d.WithNote(source.Span{File: fileID}, "note"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("Expected count=2, got %d", out.Count)
	}
	for _, d := range out.Diagnostics {
		if len(d.Notes) != 0 {
			t.Errorf("notes must be omitted without IncludeNotes")
		}
		if d.Location.StartLine != 0 {
			t.Errorf("positions must be omitted without IncludePositions")
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.sal", []byte("вывод 1"))
	tokens := []token.Token{
		{Kind: token.KwOutput, Span: source.Span{File: fileID, Start: 0, End: 10}, Text: "вывод"},
		{Kind: token.IntLit, Span: source.Span{File: fileID, Start: 11, End: 12}, Text: "1"},
		{Kind: token.EOF, Span: source.Span{File: fileID, Start: 12, End: 12}},
		{Kind: token.Ident, Span: source.Span{File: fileID, Start: 12, End: 12}, Text: "after-eof"},
	}

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected output to stop at EOF, got %d tokens", len(out))
	}
	if out[1].Kind != token.IntLit.String() || out[1].Col != 7 {
		t.Errorf("unexpected second token %+v", out[1])
	}
}
