package codegen

import (
	"io"
	"strings"

	"github.com/hassan/minicc/internal/machine"
)

// Function is one compiled function: its global label and the flat
// instruction list, in emission order.
type Function struct {
	Name         string
	Instructions []machine.Instruction
}

// String renders the function as assembly text. Labels sit flush
// left, instructions indent under them. The text is a direct
// projection of the instruction list; nothing is reordered or
// dropped.
func (f *Function) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Function) write(sb *strings.Builder) {
	sb.WriteString(f.Name)
	sb.WriteString(":\n")
	for _, instr := range f.Instructions {
		for _, label := range instr.Labels {
			sb.WriteString(label)
			sb.WriteString(":\n")
		}
		sb.WriteString("  ")
		sb.WriteString(instr.String())
		sb.WriteByte('\n')
	}
}

// Program is the compiled output of a whole module, one Function per
// surviving source function, in declaration order.
type Program struct {
	Functions []*Function
}

// Add appends a function.
func (p *Program) Add(fn *Function) {
	p.Functions = append(p.Functions, fn)
}

// String renders the whole program, functions separated by a blank
// line.
func (p *Program) String() string {
	var sb strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fn.write(&sb)
	}
	return sb.String()
}

// WriteTo writes the rendered program to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}
