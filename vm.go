// vm.go - the VM instance tying registers, memory and cache together
//
// Per spec §9's Design Notes, state that the original program kept as
// process-wide globals is encapsulated here in a single instance owned by
// the controller, enabling multiple independent VMs and straightforward
// testing (ground: the teacher takes the same approach with its per-core
// CPU struct in cpu_ie32.go, just without the globals to begin with).

package main

// cntrlLatch is the ephemeral record fetch populates each cycle.
type cntrlLatch struct {
	operation byte
	operand1  byte
	operand2  byte
	operand3  byte
	immediate uint32
}

// dataLatch is the ephemeral record decode populates each cycle with the
// current values of the source registers it has validated.
type dataLatch struct {
	rv1 uint32
	rv2 uint32
}

// VMState is the controller's run-loop state (spec §4.4's state machine).
type VMState int

const (
	StateRun VMState = iota
	StateHalted
	StateFaulted
)

// VM owns every piece of mutable state for one ISA-4380 machine: the
// register file, main memory, the optional cache sitting in front of it,
// and the per-cycle control/data latches. A VM is single-threaded and is
// never accessed from more than one goroutine, so unlike the teacher's CPU
// struct it carries no mutex.
type VM struct {
	Regs  RegisterFile
	Mem   *Memory
	Cache *Cache

	cntrl cntrlLatch
	data  dataLatch

	state VMState
	io    *terminalIO
}

// NewVM allocates a VM with the given memory size and cache mode. The
// register file and stack/heap pointers are left zeroed; LoadImage initialises
// them from a program image.
func NewVM(memSize uint32, mode CacheMode, io *terminalIO) *VM {
	mem := NewMemory(memSize)
	return &VM{
		Mem:   mem,
		Cache: NewCache(mode, mem),
		io:    io,
		state: StateRun,
	}
}

// MemCycles returns the accumulated memory-cycle counter.
func (vm *VM) MemCycles() uint64 { return vm.Cache.Cycles() }
