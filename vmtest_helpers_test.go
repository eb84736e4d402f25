// vmtest_helpers_test.go - small test-only assembler used to build ISA-4380
// byte programs for the test suite. Not a shipped tool (spec.md scopes a
// standalone assembler/binary-builder out of this repo); this exists purely
// to keep the opcode tests readable.

package main

import "encoding/binary"

func inst(op, r1, r2, r3 byte, imm uint32) []byte {
	buf := make([]byte, InstructionSize)
	buf[0] = op
	buf[1] = r1
	buf[2] = r2
	buf[3] = r3
	binary.LittleEndian.PutUint32(buf[4:8], imm)
	return buf
}

// image concatenates a 4-byte entry-point header with one or more encoded
// instructions, as LoadImage expects.
func image(entry uint32, instrs ...[]byte) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, entry)
	for _, in := range instrs {
		buf = append(buf, in...)
	}
	return buf
}

