package msil

import (
	"fmt"
	"strings"
)

// Label is a jump target resolved in the finalisation pass: it receives
// the index of the instruction emitted right after it was marked.
type Label struct {
	index  int
	placed bool
}

func (l *Label) String() string {
	return fmt.Sprintf("IL_%d", l.index)
}

type instr struct {
	op     string
	arg    string
	target *Label
	labels []*Label
}

// methodCode: тело одного метода; индексы меток локальны для метода.
type methodCode struct {
	instrs  []instr
	pending []*Label
}

func (m *methodCode) emit(op string, args ...any) {
	in := instr{op: op, labels: m.pending}
	if len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		in.arg = strings.Join(parts, " ")
	}
	m.pending = nil
	m.instrs = append(m.instrs, in)
}

func (m *methodCode) jump(op string, target *Label) {
	m.instrs = append(m.instrs, instr{op: op, target: target, labels: m.pending})
	m.pending = nil
}

func (m *methodCode) mark(l *Label) {
	m.pending = append(m.pending, l)
}

// finalize присваивает меткам индексы и рендерит строки.
func (m *methodCode) finalize(indent string) ([]string, error) {
	if len(m.pending) > 0 {
		return nil, fmt.Errorf("label marked after the last instruction")
	}
	for i := range m.instrs {
		for _, l := range m.instrs[i].labels {
			l.index = i
			l.placed = true
		}
	}
	lines := make([]string, 0, len(m.instrs))
	for _, in := range m.instrs {
		var sb strings.Builder
		sb.WriteString(indent)
		if len(in.labels) > 0 {
			fmt.Fprintf(&sb, "%s: ", in.labels[0])
		}
		sb.WriteString(in.op)
		switch {
		case in.target != nil:
			if !in.target.placed {
				return nil, fmt.Errorf("jump to a label that was never placed")
			}
			fmt.Fprintf(&sb, " %s", in.target)
		case in.arg != "":
			sb.WriteString(" ")
			sb.WriteString(in.arg)
		}
		lines = append(lines, sb.String())
	}
	return lines, nil
}
