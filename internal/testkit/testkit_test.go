package testkit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"salc/internal/driver"
)

func TestMarkdownCases(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			RunFile(t, file)
		})
	}
}

func TestExtractCases(t *testing.T) {
	md := "# Intro\n\n```\nuntyped fence is fine\n```\n\n" +
		"## Case: one\n\n```sal\nвывод 1\n```\n\n```msil Main\nret\n```\n\n" +
		"## Case: two\n\n```sal\nвывод y\n```\n\n```error\nSEM3001 1:7\n```\n"
	cases, err := ExtractCases([]byte(md))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)
	be.Equal(t, cases[0].Name, "one")
	be.Equal(t, cases[0].Source, "вывод 1")
	be.Equal(t, cases[0].Expectations[0].Kind, FenceMSIL)
	be.Equal(t, cases[0].Expectations[0].Method, "Main")
	be.Equal(t, cases[1].Expectations[0].Kind, FenceError)
	be.Equal(t, cases[1].Expectations[0].Content, "SEM3001 1:7")
}

func TestExtractCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"fence outside case", "```sal\nвывод 1\n```\n", "outside of a case"},
		{"no source", "## Case: a\n\n```error\nSEM3001 1:1\n```\n", "has no sal fence"},
		{"no assertions", "## Case: a\n\n```sal\nвывод 1\n```\n", "has no assertion fences"},
		{"unknown fence", "## Case: a\n\n```sal\nвывод 1\n```\n\n```wasm\n```\n", "unknown fence"},
		{"two sources", "## Case: a\n\n```sal\nвывод 1\n```\n\n```sal\nвывод 2\n```\n", "several sal fences"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractCases([]byte(tt.md))
			be.Err(t, err, tt.want)
		})
	}
}

func TestMatchError(t *testing.T) {
	got := `SEM3001 1:7 unknown identifier "y"`
	be.True(t, matchError(got, got))
	be.True(t, matchError(got, "SEM3001 1:7"))
	be.True(t, !matchError(got, "SEM3001 1:"))
	be.True(t, !matchError(got, "SEM3002 1:7"))
}

func TestFirstErrorWithoutErrors(t *testing.T) {
	res, err := driver.CompileSource("a.sal", []byte("вывод 1"), driver.CompileOptions{})
	be.Err(t, err, nil)
	be.Equal(t, FirstError(res), "<no errors>")
}

func TestSpanInvariants(t *testing.T) {
	res, err := driver.DiagnoseSource("a.sal", []byte("алг f(арг цел a) нач вывод a кон\nнц для i от 1 до 3 f(i) кц"), driver.DiagnoseOptions{Stage: driver.DiagnoseStageSyntax})
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Len(), 0)
	be.Err(t, CheckSpanInvariants(res.Builder, res.Root, res.File), nil)
}
