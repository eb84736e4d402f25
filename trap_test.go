// trap_test.go - synchronous I/O trap behaviour, driven through a
// non-interactive terminalIO so the tests never touch a real tty.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func newHeadlessVM(memSize uint32, mode CacheMode, stdin string) (*VM, *bytes.Buffer) {
	var out bytes.Buffer
	io := newTerminalIOWith(strings.NewReader(stdin), &out)
	return NewVM(memSize, mode, io), &out
}

func TestTrpPrintIntIsUnsigned(t *testing.T) {
	vm, out := newHeadlessVM(64, CacheOff, "")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpPrintInt)))
	vm.Regs.SetPC(4)
	vm.Regs.Set(3, 0xFFFFFFFF) // -1 as signed, but TRP 1 prints unsigned

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 1: %v", err)
	}
	if got := out.String(); got != "4294967295" {
		t.Fatalf("stdout = %q, want %q", got, "4294967295")
	}
}

func TestTrpReadIntNegative(t *testing.T) {
	vm, _ := newHeadlessVM(64, CacheOff, "-42\n")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpReadInt)))
	vm.Regs.SetPC(4)

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 2: %v", err)
	}
	if got := int32(vm.Regs.Get(3)); got != -42 {
		t.Fatalf("R3 = %d, want -42", got)
	}
}

func TestTrpPrintCharUsesLowByte(t *testing.T) {
	vm, out := newHeadlessVM(64, CacheOff, "")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpPrintChar)))
	vm.Regs.SetPC(4)
	vm.Regs.Set(3, 0x4142) // low byte 'B'

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 3: %v", err)
	}
	if got := out.String(); got != "B" {
		t.Fatalf("stdout = %q, want %q", got, "B")
	}
}

func TestTrpPrintStrReadsLengthPrefixedBuffer(t *testing.T) {
	vm, out := newHeadlessVM(128, CacheOff, "")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpPrintStr)))
	vm.Regs.SetPC(4)
	vm.Regs.Set(3, 0x40)
	vm.Cache.WriteByte(0x40, 5)
	for i, c := range []byte("hello") {
		vm.Cache.WriteByte(0x41+uint32(i), c)
	}

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 5: %v", err)
	}
	if got := out.String(); got != "hello" {
		t.Fatalf("stdout = %q, want %q", got, "hello")
	}
}

func TestTrpReadStrWritesLengthAndNulTerminator(t *testing.T) {
	vm, _ := newHeadlessVM(128, CacheOff, "hi\n")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpReadStr)))
	vm.Regs.SetPC(4)
	vm.Regs.Set(3, 0x40)

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 6: %v", err)
	}
	if got := vm.Cache.ReadByte(0x40); got != 2 {
		t.Fatalf("length byte = %d, want 2", got)
	}
	if got := vm.Cache.ReadByte(0x41); got != 'h' {
		t.Fatalf("buf[0] = %c, want 'h'", got)
	}
	if got := vm.Cache.ReadByte(0x42); got != 'i' {
		t.Fatalf("buf[1] = %c, want 'i'", got)
	}
	if got := vm.Cache.ReadByte(0x43); got != 0 {
		t.Fatalf("terminator = %d, want 0", got)
	}
}

func TestTrpHaltSetsStateAndPrintsCycleSummary(t *testing.T) {
	vm, out := newHeadlessVM(64, CacheOff, "")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpHalt)))
	vm.Regs.SetPC(4)

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 0: %v", err)
	}
	if vm.state != StateHalted {
		t.Fatalf("state = %v, want StateHalted", vm.state)
	}
	// Cache off: the opcode word costs 8 cycles and the immediate word 2.
	if want := "Execution completed. Total memory cycles: 10\n"; out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func TestTrpDumpRegsListsAllRegisters(t *testing.T) {
	vm, out := newHeadlessVM(64, CacheOff, "")
	vm.Mem.LoadImage(image(4, inst(TRP, 0, 0, 0, TrpDumpRegs)))
	vm.Regs.SetPC(4)

	if err := runOne(t, vm); err != nil {
		t.Fatalf("TRP 98: %v", err)
	}
	for _, name := range regNames {
		if !strings.Contains(out.String(), name+"\t") {
			t.Fatalf("register dump missing %s: %q", name, out.String())
		}
	}
}
