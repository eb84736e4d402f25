// trap.go - the TRP handler (spec §4.6)
//
// Every trap is synchronous and single-threaded, so unlike the teacher's
// interrupt machinery (checkInterrupts/handleInterrupt in cpu_ie32.go) there
// is no pending-interrupt queue: TRP is decoded and serviced inline as part
// of Execute. Register and memory access go through the same RegisterFile
// and Cache helpers as every other opcode, so a trap that touches memory
// (PrintStr, ReadStr) still pays for it in the cycle counter.

package main

import (
	"fmt"
	"strconv"
	"strings"
)

const maxPascalString = 255

// runTrap services the trap numbered trapNum, per spec §4.6's table.
func runTrap(vm *VM, trapNum uint32) *VMError {
	switch trapNum {
	case TrpHalt:
		vm.io.WriteString(fmt.Sprintf("Execution completed. Total memory cycles: %d\n", vm.MemCycles()))
		vm.state = StateHalted

	case TrpPrintInt:
		vm.io.WriteString(strconv.FormatUint(uint64(vm.Regs.Get(3)), 10))

	case TrpReadInt:
		v, err := vm.io.readInt()
		if err != nil {
			return trapIOFault(vm, "TRP 2", err)
		}
		vm.Regs.Set(3, v)

	case TrpPrintChar:
		vm.io.WriteByte(byte(vm.Regs.Get(3)))

	case TrpReadChar:
		b, err := vm.io.readCharSkipWS()
		if err != nil {
			return trapIOFault(vm, "TRP 4", err)
		}
		vm.Regs.Set(3, uint32(b))

	case TrpPrintStr:
		if err := printPascalString(vm); err != nil {
			return err
		}

	case TrpReadStr:
		if err := readPascalString(vm); err != nil {
			return err
		}

	case TrpDumpRegs:
		dumpRegisters(vm)

	default:
		return &VMError{Kind: ErrInvalidTrap, Offset: vm.Regs.PC() - InstructionSize}
	}
	return nil
}

func trapIOFault(vm *VM, which string, err error) *VMError {
	return &VMError{Kind: ErrInvalidTrap, Offset: vm.Regs.PC() - InstructionSize, Msg: which + ": " + err.Error()}
}

// printPascalString writes the length-prefixed string at R3 to stdout.
func printPascalString(vm *VM) *VMError {
	addr := vm.Regs.Get(3)
	if !vm.Mem.InRange(addr, 1) {
		return memFault(vm, addr)
	}
	length := uint32(vm.Cache.ReadByte(addr))
	if !vm.Mem.InRange(addr+1, length) {
		return memFault(vm, addr)
	}
	var sb strings.Builder
	for i := uint32(0); i < length; i++ {
		sb.WriteByte(vm.Cache.ReadByte(addr + 1 + i))
	}
	vm.io.WriteString(sb.String())
	return nil
}

// readPascalString reads one line from stdin and stores it as a length byte,
// the characters, then a NUL terminator at R3, truncating to
// maxPascalString bytes so the length fits in one byte.
func readPascalString(vm *VM) *VMError {
	addr := vm.Regs.Get(3)
	line, err := vm.io.readLine()
	if err != nil && len(line) == 0 {
		return trapIOFault(vm, "TRP 6", err)
	}
	if len(line) > maxPascalString {
		line = line[:maxPascalString]
	}
	if !vm.Mem.InRange(addr+1, uint32(len(line))+1) {
		return memFault(vm, addr)
	}
	vm.Cache.WriteByte(addr, byte(len(line)))
	for i := 0; i < len(line); i++ {
		vm.Cache.WriteByte(addr+1+uint32(i), line[i])
	}
	vm.Cache.WriteByte(addr+1+uint32(len(line)), 0)
	return nil
}

// dumpRegisters prints all 22 registers in declared order (TRP 98), one per
// line as name, tab, unsigned decimal value.
func dumpRegisters(vm *VM) {
	var sb strings.Builder
	for i, name := range regNames {
		fmt.Fprintf(&sb, "%s\t%d\n", name, vm.Regs.Get(byte(i)))
	}
	vm.io.WriteString(sb.String())
}
