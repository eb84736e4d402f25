// loader.go - the Loader component (spec §4.1)
//
// Grounded on the teacher's CPU.LoadProgram (cpu_ie32.go) for the
// read-whole-file-then-copy-into-memory shape, and on FileIODevice's
// (file_io.go) os.ReadFile usage, but reports the documented error kinds
// as *VMError rather than teacher-style fmt.Printf diagnostics.

package main

import (
	"encoding/binary"
	"os"
)

// LoadImage reads the binary image at path into vm.Mem and initialises the
// register file per spec §4.1. It is the only function that touches the
// filesystem; everything downstream operates purely on vm.Mem and vm.Regs.
func LoadImage(vm *VM, path string) *VMError {
	data, err := os.ReadFile(path)
	if err != nil {
		return newVMError(ErrFileNotFound, err.Error())
	}

	memSize := vm.Mem.Size()
	if uint32(len(data)) > memSize || len(data) < 4 {
		return newVMError(ErrInsufficientMemory, "image does not fit configured memory size")
	}

	vm.Mem.LoadImage(data)

	entry := binary.LittleEndian.Uint32(data[0:4])
	if entry >= memSize {
		return newVMError(ErrBadEntry, "entry point outside memory")
	}

	fileLen := uint32(len(data))
	vm.Regs.SetSL(fileLen)
	vm.Regs.SetSB(memSize)
	vm.Regs.SetSP(memSize)
	vm.Regs.SetFP(vm.Regs.SP())
	vm.Regs.SetHP(fileLen)
	vm.Regs.SetPC(entry)

	return nil
}
