// Package program builds executable instruction sequences from Brainfuck
// source text.
package program

import "fmt"

type Op uint8

const (
	OpMoveRight     Op = iota // shift the cursor right by Amount cells
	OpMoveLeft                // shift the cursor left by Amount cells
	OpAddCell                 // add Amount (mod 256) to the current cell
	OpSubCell                 // subtract Amount (mod 256) from the current cell
	OpOutput                  // write the current cell to standard output
	OpInput                   // read one byte from standard input into the current cell
	OpJumpIfZero              // branch past the matching OpJumpIfNonZero when the cell is zero
	OpJumpIfNonZero           // branch back to the matching OpJumpIfZero when the cell is nonzero
)

// Instruction is one step of a compiled program. Amount is meaningful for
// the move and adjust ops, Target for the jump ops; Target holds the index
// of the matching jump instruction in the same Program.
type Instruction struct {
	Op     Op
	Amount int
	Target int
}

// Program is an ordered instruction sequence with mutually resolved jump
// targets. It is never mutated after Build returns it.
type Program []Instruction

func (in Instruction) String() string {
	switch in.Op {
	case OpMoveRight:
		return fmt.Sprintf("move +%d", in.Amount)
	case OpMoveLeft:
		return fmt.Sprintf("move -%d", in.Amount)
	case OpAddCell:
		return fmt.Sprintf("add %d", in.Amount)
	case OpSubCell:
		return fmt.Sprintf("sub %d", in.Amount)
	case OpOutput:
		return "out"
	case OpInput:
		return "in"
	case OpJumpIfZero:
		return fmt.Sprintf("jz -> %d", in.Target)
	case OpJumpIfNonZero:
		return fmt.Sprintf("jnz -> %d", in.Target)
	}
	return fmt.Sprintf("op(%d)", in.Op)
}
