package testkit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FenceKind is the info string of a code fence inside a case.
type FenceKind string

const (
	// FenceSource holds the program under test.
	FenceSource FenceKind = "sal"
	// FenceMSIL is the expected output: the whole file, or the instructions
	// of one method when the info string names it ("msil Main").
	FenceMSIL FenceKind = "msil"
	// FenceError is the first expected error: "CODE line:col [message]".
	FenceError FenceKind = "error"
	// FenceAST is the expected parse tree as printed by diagfmt.FormatASTPretty.
	FenceAST FenceKind = "ast"
)

// Expectation is one assertion fence of a case.
type Expectation struct {
	Kind FenceKind
	// Method is the optional argument of a msil fence.
	Method  string
	Content string
	Line    int
}

// Case is a markdown section whose heading starts with "Case: ".
type Case struct {
	Name         string
	Line         int
	Source       string
	Expectations []Expectation
}

// ExtractCases collects cases from a markdown document. Fences outside a case
// must be untyped; each case needs one sal fence and at least one assertion.
func ExtractCases(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases   []Case
		current *Case
		hasSrc  bool
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if !hasSrc {
			return fmt.Errorf("line %d: case %q has no sal fence", current.Line, current.Name)
		}
		if len(current.Expectations) == 0 {
			return fmt.Errorf("line %d: case %q has no assertion fences", current.Line, current.Name)
		}
		cases = append(cases, *current)
		return nil
	}

	err := gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *gast.Heading:
			heading := nodeText(n, markdown)
			name, ok := strings.CutPrefix(heading, "Case: ")
			if !ok {
				return gast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return gast.WalkStop, err
			}
			current = &Case{Name: strings.TrimSpace(name), Line: lineOf(n, markdown)}
			hasSrc = false
		case *gast.FencedCodeBlock:
			info := ""
			if n.Info != nil {
				info = strings.TrimSpace(string(n.Info.Segment.Value(markdown)))
			}
			kind, arg, _ := strings.Cut(info, " ")
			line := lineOf(n, markdown)
			if current == nil {
				if kind != "" {
					return gast.WalkStop, fmt.Errorf("line %d: %s fence outside of a case", line, kind)
				}
				return gast.WalkContinue, nil
			}
			content := strings.TrimRight(blockContent(n, markdown), "\n")
			switch FenceKind(kind) {
			case FenceSource:
				if hasSrc {
					return gast.WalkStop, fmt.Errorf("line %d: case %q has several sal fences", line, current.Name)
				}
				current.Source = content
				hasSrc = true
			case FenceMSIL, FenceError, FenceAST:
				current.Expectations = append(current.Expectations, Expectation{
					Kind:    FenceKind(kind),
					Method:  strings.TrimSpace(arg),
					Content: content,
					Line:    line,
				})
			default:
				return gast.WalkStop, fmt.Errorf("line %d: unknown fence %q in case %q", line, kind, current.Name)
			}
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func nodeText(node gast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gast.Walk(node, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if t, ok := n.(*gast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *gast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// lineOf: 1-based строка первого сегмента узла.
func lineOf(node gast.Node, src []byte) int {
	if node.Lines().Len() == 0 {
		return 0
	}
	start := node.Lines().At(0).Start
	return bytes.Count(src[:min(start, len(src))], []byte{'\n'}) + 1
}
