// controller.go - the run loop / state machine (spec §4.4, §6, §7)
//
// Drives Fetch/Decode/Execute to completion, translating the VM's internal
// fault into the diagnostic format and process exit code spec §6/§7 define.
// Grounded on cpu_ie32.go's Execute loop for the overall run-until-stopped
// shape, but split into the three discrete stages and reporting through
// *VMError rather than print-and-halt.

package main

import (
	"fmt"
	"os"
)

// exit codes, per spec §6: 0 clean halt; 1 usage or runtime fault; 2
// size/config error or image too large.
const (
	exitOK     = 0
	exitUsage  = 1
	exitFault  = 1
	exitConfig = 2
)

// Run drives the fetch/decode/execute cycle until the program halts (TRP 0)
// or faults. It returns the process exit code to use.
func Run(vm *VM) int {
	for vm.state == StateRun {
		faultPC := vm.Regs.PC()

		if err := Fetch(vm); err != nil {
			return reportFault(vm, err, faultPC)
		}
		if err := Decode(vm); err != nil {
			return reportFault(vm, err, faultPC)
		}
		if err := Execute(vm); err != nil {
			return reportFault(vm, err, faultPC)
		}
	}
	return exitOK
}

// reportFault prints the diagnostic for a *VMError to stderr and returns the
// process exit code for it. instrOffset is the address of the instruction
// that was being fetched when the fault occurred, used when the error
// itself did not already set a more specific Offset.
func reportFault(vm *VM, err *VMError, instrOffset uint32) int {
	if err.Offset == 0 && err.Kind != ErrFetchOOB {
		err.Offset = instrOffset
	}
	vm.state = StateFaulted
	fmt.Fprintln(os.Stderr, err.Error())
	return exitFault
}
