package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters(t *testing.T) {
	assert.Equal(t, 8, NumGPR)
	assert.Equal(t, 8, WordSize)

	for i, r := range GPR {
		assert.Equal(t, ClassGeneral, r.Class)
		assert.Equal(t, 64, r.Bits)
		assert.Equal(t, GPR[i].Name, r.String())
	}
	assert.Equal(t, "R0", GPR[0].Name)
	assert.Equal(t, "R7", GPR[7].Name)
	assert.Equal(t, R0, ReturnRegister)

	assert.Equal(t, ClassStackPointer, SP.Class)
	assert.Equal(t, ClassFramePointer, FP.Class)
	assert.Equal(t, ClassProgramCounter, PC.Class)
	assert.Equal(t, ClassFlags, FLAGS.Class)
}

func TestRegisterClass_String(t *testing.T) {
	tests := []struct {
		class    RegisterClass
		expected string
	}{
		{ClassGeneral, "general"},
		{ClassStackPointer, "stack pointer"},
		{ClassFramePointer, "frame pointer"},
		{ClassProgramCounter, "program counter"},
		{ClassFlags, "flags"},
		{RegisterClass(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.String())
		})
	}
}

func TestOpcode_String(t *testing.T) {
	tests := []struct {
		op       Opcode
		expected string
	}{
		{ADD, "ADD"},
		{MOD, "MOD"},
		{CMP, "CMP"},
		{JGE, "JGE"},
		{MOVE, "MOVE"},
		{CALL, "CALL"},
		{RET, "RET"},
		{NOP, "NOP"},
		{Opcode(-1), "UNKNOWN"},
		{Opcode(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}
}

func TestOperand_String(t *testing.T) {
	tests := []struct {
		name     string
		operand  Operand
		expected string
	}{
		{"register", Reg(R3), "R3"},
		{"immediate", Imm(42), "#42"},
		{"negative immediate", Imm(-1), "#-1"},
		{"zero immediate", Imm(0), "#0"},
		{"frame slot", Mem(FP, -16), "[FP-16]"},
		{"parameter slot", Mem(FP, 24), "[FP+24]"},
		{"bare base", Mem(SP, 0), "[SP]"},
		{"label", LabelRef("factorial"), "factorial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.operand.String())
		})
	}
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		name     string
		instr    Instruction
		expected string
	}{
		{"three operand alu", New(ADD, Reg(R0), Reg(R1), Imm(8)), "ADD R0, R1, #8"},
		{"move", New(MOVE, Reg(FP), Reg(SP)), "MOVE FP, SP"},
		{"load from frame", New(LOAD, Reg(R2), Mem(FP, 16)), "LOAD R2, [FP+16]"},
		{"call", New(CALL, LabelRef("factorial")), "CALL factorial"},
		{"no operands", New(RET), "RET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.instr.String())
		})
	}
}
