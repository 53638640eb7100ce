// Package compiler drives source text through the whole backend.
//
// THE PIPELINE:
//
//	source --lex/parse--> AST --irgen--> IR
//	       --liveness--> live sets --interference--> graph
//	       --allocate--> registers --codegen--> assembly
//
// The front half runs once per file, the back half once per function.
// Functions are independent after parsing: they share no mutable
// state, so the driver can compile them concurrently when asked.
//
// KEY DESIGN CHOICES:
//   - Failures are isolated per function. A function that fails any
//     stage is dropped and reported; the rest of the file still
//     compiles. Callers get both the partial program and the combined
//     error.
//   - Syntax errors are different: code generated from a broken parse
//     would be misleading, so any syntax error stops the file after
//     the parser has reported everything it found.
//   - Output keeps declaration order no matter how many workers ran.
package compiler

import (
	"sync"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/hassan/minicc/internal/codegen"
	"github.com/hassan/minicc/internal/ir"
	"github.com/hassan/minicc/internal/irgen"
	"github.com/hassan/minicc/internal/lexer"
	"github.com/hassan/minicc/internal/liveness"
	"github.com/hassan/minicc/internal/machine"
	"github.com/hassan/minicc/internal/parser"
	"github.com/hassan/minicc/internal/parser/ast"
	"github.com/hassan/minicc/internal/regalloc"
)

// Options configures a Compiler.
type Options struct {
	// Jobs caps how many functions compile concurrently. Zero or one
	// compiles serially.
	Jobs int
}

// Compiler turns source text into assembly programs.
type Compiler struct {
	opts Options
}

// New creates a compiler with the given options.
func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile runs the full pipeline over one source file.
//
// The returned program holds every function that compiled, in
// declaration order. The returned error collects one entry per failed
// function, or nil when everything compiled.
func (c *Compiler) Compile(source, filename string) (*codegen.Program, error) {
	program, err := c.parse(source, filename)
	if err != nil {
		return nil, err
	}

	decls := program.Functions
	results := make([]*codegen.Function, len(decls))
	errs := make([]error, len(decls))

	jobs := c.opts.Jobs
	if jobs > len(decls) {
		jobs = len(decls)
	}
	glog.V(1).Infof("compiling %d functions from %s, jobs=%d", len(decls), filename, jobs)

	if jobs > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, jobs)
		for i, decl := range decls {
			wg.Add(1)
			go func(i int, decl *ast.FuncDecl) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[i], errs[i] = compileFunction(decl)
			}(i, decl)
		}
		wg.Wait()
	} else {
		for i, decl := range decls {
			results[i], errs[i] = compileFunction(decl)
		}
	}

	out := &codegen.Program{}
	var result *multierror.Error
	for i, decl := range decls {
		if errs[i] != nil {
			glog.Errorf("dropping function %s: %v", decl.Name.Name, errs[i])
			result = multierror.Append(result, errs[i])
			continue
		}
		glog.V(1).Infof("compiled %s: %d instructions", results[i].Name, len(results[i].Instructions))
		out.Add(results[i])
	}
	return out, result.ErrorOrNil()
}

// IR runs the front half of the pipeline only and returns the IR
// module, for inspection. Failed functions are dropped and reported
// the same way Compile drops them.
func (c *Compiler) IR(source, filename string) (*ir.Module, error) {
	program, err := c.parse(source, filename)
	if err != nil {
		return nil, err
	}
	return irgen.Generate(program)
}

// parse lexes and parses one source file. The parser recovers at
// function boundaries, so the error reports every syntax problem in
// the file at once.
func (c *Compiler) parse(source, filename string) (*ast.Program, error) {
	glog.V(1).Infof("parsing %s (%d bytes)", filename, len(source))
	return parser.New(lexer.New(source, filename)).ParseProgram(filename)
}

// compileFunction runs one function through the back half of the
// pipeline. The first stage to fail aborts this function only.
func compileFunction(decl *ast.FuncDecl) (*codegen.Function, error) {
	fn, err := irgen.GenerateFunction(decl)
	if err != nil {
		return nil, err
	}
	if errs := fn.Verify(); len(errs) > 0 {
		return nil, errors.Wrapf(multierror.Append(nil, errs...), "function %s: malformed IR", fn.Name)
	}

	info := liveness.Compute(fn)
	graph := regalloc.BuildGraph(fn, info)
	alloc := regalloc.Allocate(graph, machine.NumGPR)

	return codegen.Generate(fn, alloc)
}
