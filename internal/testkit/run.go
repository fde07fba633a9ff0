package testkit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"salc/internal/diagfmt"
	"salc/internal/driver"
)

// RunFile runs every case of a markdown file as a subtest.
func RunFile(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	be.Err(t, err, nil)
	cases, err := ExtractCases(data)
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			RunCase(t, filepath.Base(path), c)
		})
	}
}

// RunCase compiles the case source and checks each expectation.
func RunCase(t *testing.T, file string, c Case) {
	t.Helper()
	name := strings.TrimSuffix(file, filepath.Ext(file)) + ".sal"
	for _, exp := range c.Expectations {
		where := fmt.Sprintf("%s:%d", file, exp.Line)
		switch exp.Kind {
		case FenceAST:
			res, err := driver.DiagnoseSource(name, []byte(c.Source), driver.DiagnoseOptions{Stage: driver.DiagnoseStageSyntax})
			be.Err(t, err, nil)
			if first, ok := res.Bag.First(); ok {
				t.Fatalf("%s: unexpected %s: %s", where, first.Code.ID(), first.Message)
			}
			be.Err(t, CheckSpanInvariants(res.Builder, res.Root, res.File), nil)
			var buf bytes.Buffer
			be.Err(t, diagfmt.FormatASTPretty(&buf, res.Builder, res.Root, diagfmt.ASTOpts{}), nil)
			be.Equal(t, strings.TrimRight(buf.String(), "\n"), exp.Content)
		case FenceMSIL:
			res, err := driver.CompileSource(name, []byte(c.Source), driver.CompileOptions{})
			be.Err(t, err, nil)
			if first, ok := res.Bag.First(); ok {
				t.Fatalf("%s: unexpected %s: %s", where, first.Code.ID(), first.Message)
			}
			if exp.Method == "" {
				be.Equal(t, strings.TrimRight(res.Text(), "\n"), exp.Content)
				continue
			}
			body, ok := MethodBody(res.Lines, exp.Method)
			if !ok {
				t.Fatalf("%s: method %s not found in:\n%s", where, exp.Method, res.Text())
			}
			be.Equal(t, strings.Join(body, "\n"), trimLines(exp.Content))
		case FenceError:
			res, err := driver.CompileSource(name, []byte(c.Source), driver.CompileOptions{})
			be.Err(t, err, nil)
			got := FirstError(res)
			if !matchError(got, strings.TrimSpace(exp.Content)) {
				t.Fatalf("%s: first error\ngot:  %s\nwant: %s", where, got, exp.Content)
			}
		}
	}
}

// FirstError renders the first error of a result as "CODE line:col message".
func FirstError(res *driver.CompileResult) string {
	first, ok := res.Bag.First()
	if !ok {
		return "<no errors>"
	}
	pos := res.FileSet.Position(first.Primary)
	return fmt.Sprintf("%s %d:%d %s", first.Code.ID(), pos.Line, pos.Col, first.Message)
}

// matchError accepts the full line or just its "CODE line:col" head.
func matchError(got, want string) bool {
	if got == want {
		return true
	}
	rest, ok := strings.CutPrefix(got, want)
	return ok && strings.HasPrefix(rest, " ")
}

// MethodBody returns the trimmed instructions of the named method without directives.
func MethodBody(lines []string, name string) ([]string, bool) {
	start := -1
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), ".method") && strings.Contains(l, " "+name+"(") {
			start = i
			break
		}
	}
	if start < 0 || start+2 > len(lines) {
		return nil, false
	}
	var body []string
	for _, l := range lines[start+2:] {
		s := strings.TrimSpace(l)
		if s == "}" {
			break
		}
		if s == "" || strings.HasPrefix(s, ".") {
			continue
		}
		body = append(body, s)
	}
	return body, true
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
