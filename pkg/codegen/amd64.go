package codegen

import "gobf/pkg/program"

// The generated function follows the System V AMD64 calling convention
// with rsi, the second argument register, dedicated to the cursor: the
// caller passes the tape base address as its second argument and the code
// keeps the current cell address in rsi from entry to the trailing ret.
// Output and input go through raw write(2)/read(2) syscalls on fds 1 and
// 0, one byte at a time, straight from and into the current cell.
//
// A conditional jump sequence is cmp byte [rsi], 0 followed by je/jne
// rel32, nine bytes in total; its displacement is relative to the end of
// the sequence.
const jumpLen = 9

func emitMoveRight(b *Buffer, amount int) {
	if amount == 1 {
		b.Emit(0x48, 0xff, 0xc6) // inc rsi
		return
	}
	b.Emit(0x48, 0x81, 0xc6) // add rsi, imm32
	b.EmitInt32(int32(amount))
}

func emitMoveLeft(b *Buffer, amount int) {
	if amount == 1 {
		b.Emit(0x48, 0xff, 0xce) // dec rsi
		return
	}
	b.Emit(0x48, 0x81, 0xee) // sub rsi, imm32
	b.EmitInt32(int32(amount))
}

// Cell adjustments carry an 8-bit immediate: cells are bytes, so the run
// length is truncated mod 256. Pointer moves above keep a full 32-bit
// immediate since the tape is wider than 256 cells. The asymmetry is
// deliberate; both encodings preserve the observable byte arithmetic.
func emitAddCell(b *Buffer, amount int) {
	if amount == 1 {
		b.Emit(0xfe, 0x06) // inc byte [rsi]
		return
	}
	b.Emit(0x80, 0x06, byte(amount)) // add byte [rsi], imm8
}

func emitSubCell(b *Buffer, amount int) {
	if amount == 1 {
		b.Emit(0xfe, 0x0e) // dec byte [rsi]
		return
	}
	b.Emit(0x80, 0x2e, byte(amount)) // sub byte [rsi], imm8
}

func emitOutput(b *Buffer) {
	b.Emit(
		0xb8, 0x01, 0x00, 0x00, 0x00, // mov eax, 1 (sys_write)
		0xbf, 0x01, 0x00, 0x00, 0x00, // mov edi, 1 (stdout)
		0xba, 0x01, 0x00, 0x00, 0x00, // mov edx, 1 (one byte)
		0x0f, 0x05, // syscall
	)
}

func emitInput(b *Buffer) {
	b.Emit(
		0x48, 0x31, 0xc0, // xor rax, rax (sys_read)
		0x48, 0x31, 0xff, // xor rdi, rdi (stdin)
		0xba, 0x01, 0x00, 0x00, 0x00, // mov edx, 1
		0x0f, 0x05, // syscall
	)
}

func emitJumpIfZero(b *Buffer, disp int32) {
	b.Emit(0x80, 0x3e, 0x00) // cmp byte [rsi], 0
	b.Emit(0x0f, 0x84)       // je rel32
	b.EmitInt32(disp)
}

func emitJumpIfNonZero(b *Buffer, disp int32) {
	b.Emit(0x80, 0x3e, 0x00) // cmp byte [rsi], 0
	b.Emit(0x0f, 0x85)       // jne rel32
	b.EmitInt32(disp)
}

func emitReturn(b *Buffer) {
	b.Emit(0xc3) // ret
}

// fixup records a forward jump whose displacement is unknown during the
// first pass: site is the offset of the nine-byte jump sequence, target
// the logical index of the matching JumpIfNonZero.
type fixup struct {
	site   int
	target int
}

// Compile translates a program into machine code in two passes.
//
// Pass one emits every instruction in order and records the buffer offset
// at which each one ends. A JumpIfZero branches to the end of its paired
// JumpIfNonZero, which has not been emitted yet, so a placeholder
// displacement is written and the site is recorded. A JumpIfNonZero
// branches backward to the already-known end of its paired JumpIfZero, so
// its displacement is final immediately.
//
// Pass two revisits each recorded site and overwrites the placeholder
// with end(target) - end(site). A trailing ret is appended last.
//
// Compilation is deterministic: the same program always yields the same
// bytes.
func Compile(p program.Program) []byte {
	var b Buffer
	end := make([]int, len(p))
	var fixups []fixup

	for i, in := range p {
		switch in.Op {
		case program.OpMoveRight:
			emitMoveRight(&b, in.Amount)
		case program.OpMoveLeft:
			emitMoveLeft(&b, in.Amount)
		case program.OpAddCell:
			emitAddCell(&b, in.Amount)
		case program.OpSubCell:
			emitSubCell(&b, in.Amount)
		case program.OpOutput:
			emitOutput(&b)
		case program.OpInput:
			emitInput(&b)
		case program.OpJumpIfZero:
			fixups = append(fixups, fixup{site: b.Len(), target: in.Target})
			emitJumpIfZero(&b, 0)
		case program.OpJumpIfNonZero:
			emitJumpIfNonZero(&b, int32(end[in.Target]-(b.Len()+jumpLen)))
		}
		end[i] = b.Len()
	}

	for _, f := range fixups {
		// The rel32 occupies the last four bytes of the jump sequence.
		b.PatchInt32(f.site+jumpLen-4, int32(end[f.target]-(f.site+jumpLen)))
	}

	emitReturn(&b)
	return b.Bytes()
}
