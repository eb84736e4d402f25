// decode.go - Decode (spec §4.3)
//
// Validates operand classes per opcode and latches source register values
// into vm.data. The per-opcode contract is the table in spec §4.3; there is
// no teacher analogue for this validation pass (the teacher trusts its own
// bytecode unconditionally), so the shape here — one case per opcode, each
// returning its own malformed-instruction error, with unknown opcodes
// falling through to a single default — follows the
// teacher's dense-switch dispatch style applied to a new concern.

package main

func addrOK(vm *VM, addr uint32, n uint32) bool {
	return vm.Mem.InRange(addr, n)
}

func malformed(msg string) *VMError {
	return &VMError{Kind: ErrMalformedInstr, Msg: msg}
}

// Decode validates vm.cntrl (populated by Fetch) and latches vm.data.
func Decode(vm *VM) *VMError {
	c := vm.cntrl
	r1, r2, r3 := c.operand1, c.operand2, c.operand3

	switch c.operation {
	case JMP:
		if !addrOK(vm, c.immediate, 1) {
			return malformed("JMP address out of range")
		}

	case JMR:
		if !isValidReg(r1) {
			return malformed("JMR: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r1)

	case BNZ, BGT, BLT, BRZ:
		if !isValidReg(r1) {
			return malformed("branch: invalid register")
		}
		if !addrOK(vm, c.immediate, 1) {
			return malformed("branch: address out of range")
		}
		vm.data.rv1 = vm.Regs.Get(r1)

	case MOV:
		if !isValidReg(r1) || !isValidReg(r2) {
			return malformed("MOV: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r2)

	case MOVI:
		if !isValidReg(r1) {
			return malformed("MOVI: invalid register")
		}

	case LDA:
		if !isValidReg(r1) {
			return malformed("LDA: invalid register")
		}
		if !addrOK(vm, c.immediate, 1) {
			return malformed("LDA: address out of range")
		}

	case STR:
		if !isValidReg(r1) {
			return malformed("STR: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r1)

	case STB:
		if !isValidReg(r1) {
			return malformed("STB: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r1) & 0xFF

	case LDR, LDB:
		if !isValidReg(r1) {
			return malformed("load: invalid register")
		}

	case ISTR:
		if !isValidReg(r1) || !isValidReg(r2) {
			return malformed("ISTR: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r1)
		vm.data.rv2 = vm.Regs.Get(r2)

	case ISTB:
		if !isValidReg(r1) || !isValidReg(r2) {
			return malformed("ISTB: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r1) & 0xFF
		vm.data.rv2 = vm.Regs.Get(r2)

	case ILDR, ILDB:
		if !isValidReg(r1) || !isValidReg(r2) {
			return malformed("iload: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r2)

	case ADD, SUB, MUL, DIV, SDIV, AND, OR:
		if !isGPR(r1) || !isGPR(r2) || !isGPR(r3) {
			return malformed("arith: operand not a GPR")
		}
		vm.data.rv1 = vm.Regs.Get(r2)
		vm.data.rv2 = vm.Regs.Get(r3)

	case ADDI, SUBI, MULI, DIVI:
		if !isGPR(r1) || !isGPR(r2) {
			return malformed("arithI: operand not a GPR")
		}
		vm.data.rv1 = vm.Regs.Get(r2)

	case CMP:
		if !isValidReg(r1) || !isValidReg(r2) || !isValidReg(r3) {
			return malformed("CMP: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r2)
		vm.data.rv2 = vm.Regs.Get(r3)

	case CMPI:
		if !isValidReg(r1) || !isValidReg(r2) {
			return malformed("CMPI: invalid register")
		}
		vm.data.rv1 = vm.Regs.Get(r2)

	case TRP:
		switch c.immediate {
		case TrpHalt, TrpPrintInt, TrpReadInt, TrpPrintChar, TrpReadChar, TrpPrintStr, TrpReadStr, TrpDumpRegs:
		default:
			return &VMError{Kind: ErrInvalidTrap, Msg: "unknown trap number"}
		}

	case ALCI:
		if !isGPR(r1) {
			return malformed("ALCI: destination not a GPR")
		}

	case ALLC:
		if !isGPR(r1) {
			return malformed("ALLC: destination not a GPR")
		}

	case IALLC:
		if !isGPR(r1) || !isGPR(r2) {
			return malformed("IALLC: operand not a GPR")
		}
		vm.data.rv1 = vm.Regs.Get(r2)

	case PSHR:
		if !isGPR(r1) {
			return malformed("PSHR: operand not a GPR")
		}
		vm.data.rv1 = vm.Regs.Get(r1)

	case PSHB:
		if !isGPR(r1) {
			return malformed("PSHB: operand not a GPR")
		}
		vm.data.rv1 = vm.Regs.Get(r1)

	case POPR, POPB:
		if !isGPR(r1) {
			return malformed("pop: destination not a GPR")
		}

	case CALL, RET:
		// No operand validation beyond what Execute enforces on PC.

	default:
		return malformed("unknown opcode")
	}

	return nil
}
