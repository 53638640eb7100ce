package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/minicc/internal/irgen"
)

const factorialSource = `func fact(n) {
	if (n <= 1) {
		return 1;
	}
	return n * fact(n - 1);
}
`

func TestCompile_EndToEnd(t *testing.T) {
	program, err := New(Options{}).Compile(factorialSource, "fact.mc")
	require.NoError(t, err)
	require.Len(t, program.Functions, 1)

	want := `fact:
  PUSH FP
  MOVE FP, SP
  SUB SP, SP, #8
  MOVE R1, [FP+16]
fact.entry:
  CMP R1, #1
  JLE fact.if.then.0
  JMP fact.if.end.0
fact.if.then.0:
  MOVE R0, #1
  MOVE SP, FP
  POP FP
  RET
fact.if.end.0:
  SUB R0, R1, #1
  PUSH R0
  CALL fact
  ADD SP, SP, #8
  MOVE R0, R0
  MUL R0, R1, R0
  MOVE R0, R0
  MOVE SP, FP
  POP FP
  RET
`
	assert.Equal(t, want, program.String())
}

func TestCompile_SyntaxError(t *testing.T) {
	source := `func broken( {
	return 1;
}
`
	program, err := New(Options{}).Compile(source, "bad.mc")
	assert.Nil(t, program)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.mc:1:")
	assert.Contains(t, err.Error(), "expected parameter name")
}

func TestCompile_FailureIsolation(t *testing.T) {
	source := `func good(a) {
	return a + 1;
}

func bad(a) {
	break;
}

func alsoGood(a) {
	return a * 2;
}
`
	program, err := New(Options{}).Compile(source, "mixed.mc")
	require.Error(t, err)
	require.NotNil(t, program)

	require.Len(t, program.Functions, 2)
	assert.Equal(t, "good", program.Functions[0].Name)
	assert.Equal(t, "alsoGood", program.Functions[1].Name)

	assert.ErrorIs(t, err, irgen.ErrUnsupportedConstruct)
	assert.Contains(t, err.Error(), "function bad")
	assert.Contains(t, err.Error(), "break is not supported")
}

func TestCompile_ParallelMatchesSerial(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(factorialSource)
	sb.WriteString(`
func inc(a) {
	return a + 1;
}

func dec(a) {
	return a - 1;
}

func apply(a, b) {
	x = inc(a);
	y = dec(b);
	return fact(x + y);
}
`)
	source := sb.String()

	serial, err := New(Options{}).Compile(source, "many.mc")
	require.NoError(t, err)
	parallel, err := New(Options{Jobs: 4}).Compile(source, "many.mc")
	require.NoError(t, err)

	require.Len(t, parallel.Functions, 4)
	for i, fn := range parallel.Functions {
		assert.Equal(t, serial.Functions[i].Name, fn.Name)
	}
	assert.Equal(t, serial.String(), parallel.String())
}

func TestCompile_ParallelIsolatesFailures(t *testing.T) {
	source := `func ok(a) {
	return a;
}

func nope(a) {
	continue;
}
`
	program, err := New(Options{Jobs: 2}).Compile(source, "mixed.mc")
	require.Error(t, err)
	require.Len(t, program.Functions, 1)
	assert.Equal(t, "ok", program.Functions[0].Name)
	assert.ErrorIs(t, err, irgen.ErrUnsupportedConstruct)
}

func TestCompiler_IR(t *testing.T) {
	module, err := New(Options{}).IR(factorialSource, "fact.mc")
	require.NoError(t, err)

	assert.Equal(t, "fact", module.Name)
	dump := module.String()
	assert.Contains(t, dump, "; module fact")
	assert.Contains(t, dump, "func fact(n) {")
	assert.Contains(t, dump, "t2 = call fact(t1)")
	assert.Contains(t, dump, "return t3")
}

func TestCompile_EmptySource(t *testing.T) {
	program, err := New(Options{}).Compile("", "empty.mc")
	require.NoError(t, err)
	assert.Empty(t, program.Functions)
	assert.Equal(t, "", program.String())
}
