// pipeline.go - Fetch (spec §4.2)
//
// Split out from the teacher's fused fetch/decode/execute switch
// (cpu_ie32.go's Execute loop) into a discrete method per spec §2's
// explicit three-stage data flow; the instruction-word layout and
// little-endian decode are adapted directly from that loop.

package main

// Fetch reads the 8-byte instruction at PC into vm.cntrl and advances PC by
// 8. It is the only stage that talks to the cache on behalf of instruction
// words rather than data words.
func Fetch(vm *VM) *VMError {
	pc := vm.Regs.PC()
	if !vm.Mem.InRange(pc, InstructionSize) {
		return &VMError{Kind: ErrFetchOOB, Offset: pc}
	}

	w1 := vm.Cache.FetchWord(pc, false)
	vm.cntrl.operation = byte(w1 & 0xFF)
	vm.cntrl.operand1 = byte((w1 >> 8) & 0xFF)
	vm.cntrl.operand2 = byte((w1 >> 16) & 0xFF)
	vm.cntrl.operand3 = byte((w1 >> 24) & 0xFF)
	vm.Regs.SetPC(pc + WordSize)

	immAddr := vm.Regs.PC()
	w2 := vm.Cache.FetchWord(immAddr, true)
	vm.cntrl.immediate = w2
	vm.Regs.SetPC(immAddr + WordSize)

	return nil
}
