package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("prog.sal", []byte("цел x"), 0)
	id2 := fs.Add("prog.sal", []byte("вещ y"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("prog.sal")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// Старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "цел x" {
		t.Errorf("first version content = %q", got)
	}
}

func TestResolveCountsRunes(t *testing.T) {
	fs := NewFileSet()
	// "цел" = 6 байт, пробел, "x"
	id := fs.AddVirtual("a.sal", []byte("цел x\nвывод x\n"))

	start, end := fs.Resolve(Span{File: id, Start: 7, End: 8})
	if start != (LineCol{Line: 1, Col: 5}) {
		t.Errorf("start = %+v, want 1:5", start)
	}
	if end != (LineCol{Line: 1, Col: 6}) {
		t.Errorf("end = %+v, want 1:6", end)
	}

	// "x" во второй строке: 9 байт на первой строке + "вывод " (11 байт)
	pos := fs.Position(Span{File: id, Start: 20, End: 21})
	if pos != (LineCol{Line: 2, Col: 7}) {
		t.Errorf("pos = %+v, want 2:7", pos)
	}
}

func TestResolveNewlineBelongsToItsLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sal", []byte("ab\ncd"))

	if pos := fs.Position(Span{File: id, Start: 2}); pos != (LineCol{Line: 1, Col: 3}) {
		t.Errorf("newline pos = %+v, want 1:3", pos)
	}
	if pos := fs.Position(Span{File: id, Start: 3}); pos != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("line start pos = %+v, want 2:1", pos)
	}
}

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{"plain", "цел x", "цел x", 0},
		{"bom", "\xEF\xBB\xBFx\n", "x\n", FileHadBOM},
		{"crlf", "a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", "a\rb", "a\rb", 0},
		// "и" + combining breve -> "й"
		{"nfc", "мои\u0306", "мой", FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := normalizeContent([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.sal", []byte("первая\nвторая\n\nчетвёртая")))

	cases := map[uint32]string{
		0: "",
		1: "первая",
		2: "вторая",
		3: "",
		4: "четвёртая",
		5: "",
	}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.sal")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFцел x\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "цел x\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")

	got, err := RelativePath(filepath.Join(base, "src", "a.sal"), base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != "src/a.sal" {
		t.Errorf("inside base: got %q", got)
	}

	outside := filepath.Join(tmp, "other", "b.sal")
	got, err = RelativePath(outside, base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != normalizePath(outside) {
		t.Errorf("outside base: got %q, want absolute %q", got, normalizePath(outside))
	}
}

func TestInternerNFC(t *testing.T) {
	in := NewInterner()
	a := in.Intern("мой")
	b := in.Intern("мои\u0306")
	if a != b {
		t.Fatalf("NFC-equivalent names interned to %d and %d", a, b)
	}
	if s := in.MustLookup(a); s != "мой" {
		t.Errorf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown id must not resolve")
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
}
