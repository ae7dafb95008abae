package program

import (
	"errors"
	"iter"

	"gobf/pkg/runlength"
)

// ErrUnbalancedBrackets is returned when a ']' has no pending '[', or when
// one or more '[' remain open at end of input.
var ErrUnbalancedBrackets = errors.New("unbalanced brackets")

// symbols yields the recognized characters of source in order, silently
// discarding every other byte.
func symbols(source string) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < len(source); i++ {
			switch c := source[i]; c {
			case '>', '<', '+', '-', '.', ',', '[', ']':
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Build compiles source into a Program in a single forward pass.
//
// Runs of move and adjust symbols collapse into one instruction carrying
// the run length as Amount. Runs of I/O symbols become one instruction per
// symbol, since no amount semantics exist for them. Runs of brackets also
// stay one instruction per symbol: every bracket needs its own jump target.
//
// Bracket pairing uses a stack of open-bracket instruction indices. A '['
// appends a JumpIfZero with a placeholder target and pushes its index; a
// ']' pops the matching open, points it at the JumpIfNonZero about to be
// appended, and points the JumpIfNonZero back at it. An unmatched ']'
// fails immediately; unclosed opens fail at end of input.
func Build(source string) (Program, error) {
	var insts Program
	var stack []int

	for count, sym := range runlength.Pairs(symbols(source)) {
		switch sym {
		case '>':
			insts = append(insts, Instruction{Op: OpMoveRight, Amount: count})
		case '<':
			insts = append(insts, Instruction{Op: OpMoveLeft, Amount: count})
		case '+':
			insts = append(insts, Instruction{Op: OpAddCell, Amount: count})
		case '-':
			insts = append(insts, Instruction{Op: OpSubCell, Amount: count})
		case '.':
			for range count {
				insts = append(insts, Instruction{Op: OpOutput})
			}
		case ',':
			for range count {
				insts = append(insts, Instruction{Op: OpInput})
			}
		case '[':
			for range count {
				stack = append(stack, len(insts))
				insts = append(insts, Instruction{Op: OpJumpIfZero})
			}
		case ']':
			for range count {
				if len(stack) == 0 {
					return nil, ErrUnbalancedBrackets
				}
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				insts[open].Target = len(insts)
				insts = append(insts, Instruction{Op: OpJumpIfNonZero, Target: open})
			}
		}
	}

	if len(stack) != 0 {
		return nil, ErrUnbalancedBrackets
	}
	return insts, nil
}
