// opcodes.go - ISA-4380 opcode table and register name map
//
// Grouped by category with hex comments, following the constant layout the
// teacher uses for its own opcode table in cpu_ie32.go.

package main

// ------------------------------------------------------------------------------
// Instruction layout
// ------------------------------------------------------------------------------
const (
	InstructionSize = 8 // opcode + 3 operand bytes + 4-byte immediate
	WordSize        = 4
)

// ------------------------------------------------------------------------------
// Opcodes
// ------------------------------------------------------------------------------
const (
	JMP   = 0x01
	JMR   = 0x02
	BNZ   = 0x03
	BGT   = 0x04
	BLT   = 0x05
	BRZ   = 0x06
	MOV   = 0x07
	MOVI  = 0x08
	LDA   = 0x09
	STR   = 0x0A
	LDR   = 0x0B
	STB   = 0x0C
	LDB   = 0x0D
	ISTR  = 0x0E
	ILDR  = 0x0F
	ISTB  = 0x10
	ILDB  = 0x11
	ADD   = 0x12
	ADDI  = 0x13
	SUB   = 0x14
	SUBI  = 0x15
	MUL   = 0x16
	MULI  = 0x17
	DIV   = 0x18
	SDIV  = 0x19
	DIVI  = 0x1A
	AND   = 0x1B
	OR    = 0x1C
	CMP   = 0x1D
	CMPI  = 0x1E
	TRP   = 0x1F
	ALCI  = 0x20
	ALLC  = 0x21
	IALLC = 0x22
	PSHR  = 0x23
	PSHB  = 0x24
	POPR  = 0x25
	POPB  = 0x26
	CALL  = 0x27
	RET   = 0x28
)

// ------------------------------------------------------------------------------
// TRP service numbers
// ------------------------------------------------------------------------------
const (
	TrpHalt      = 0
	TrpPrintInt  = 1
	TrpReadInt   = 2
	TrpPrintChar = 3
	TrpReadChar  = 4
	TrpPrintStr  = 5
	TrpReadStr   = 6
	TrpDumpRegs  = 98
)

// ------------------------------------------------------------------------------
// Register file layout
// ------------------------------------------------------------------------------
const (
	NumRegisters = 22

	RegPC = 16
	RegSL = 17
	RegSB = 18
	RegSP = 19
	RegFP = 20
	RegHP = 21
)

// regNames gives the declared order used by TRP 98's register dump.
var regNames = [NumRegisters]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
	"PC", "SL", "SB", "SP", "FP", "HP",
}

// isGPR reports whether r is one of R0..R15.
func isGPR(r byte) bool {
	return r < 16
}

// isValidReg reports whether r names one of the 22 register cells.
func isValidReg(r byte) bool {
	return int(r) < NumRegisters
}
