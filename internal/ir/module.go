package ir

import (
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Module is one compilation unit: the functions of a source file.
type Module struct {
	// Name is the module name, taken from the source filename.
	Name string

	// Functions in declaration order.
	Functions []*Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends fn to the module.
func (m *Module) AddFunction(fn *Function) {
	m.Functions = append(m.Functions, fn)
}

// Verify runs Function.Verify over every function and collects the
// violations into a single error, or nil if the module is well-formed.
func (m *Module) Verify() error {
	var result *multierror.Error
	for _, fn := range m.Functions {
		result = multierror.Append(result, fn.Verify()...)
	}
	return result.ErrorOrNil()
}

// String returns the IR dump for the whole module.
func (m *Module) String() string {
	var sb strings.Builder
	sb.WriteString("; module ")
	sb.WriteString(m.Name)
	sb.WriteString("\n")
	for _, fn := range m.Functions {
		sb.WriteString("\n")
		sb.WriteString(fn.String())
	}
	return sb.String()
}
