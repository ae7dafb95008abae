// Package bf compiles Brainfuck source to native code and runs it
// in-process.
package bf

import (
	"fmt"
	"io"

	"gobf/pkg/codegen"
	"gobf/pkg/program"
)

const DefaultTapeSize = 30000

// Engine owns one compiled program: its instruction sequence, the machine
// code generated from it, and the tape configuration. The code is
// generated once at construction and reused across runs; each run gets a
// fresh zeroed tape.
type Engine struct {
	prog     program.Program
	code     []byte
	tapeSize int
}

// New compiles source. Bytes outside the eight-character alphabet are
// discarded; the only possible failure is program.ErrUnbalancedBrackets.
func New(source string) (*Engine, error) {
	prog, err := program.Build(source)
	if err != nil {
		return nil, fmt.Errorf("compile program: %w", err)
	}
	return &Engine{
		prog:     prog,
		code:     codegen.Compile(prog),
		tapeSize: DefaultTapeSize,
	}, nil
}

func (e *Engine) TapeSize() int {
	return e.tapeSize
}

// SetTapeSize configures the tape length for subsequent runs.
func (e *Engine) SetTapeSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("tape size must be positive, got %d", size)
	}
	e.tapeSize = size
	return nil
}

// Run executes the compiled program against a fresh zeroed tape. It
// blocks until the program halts; a program that never halts runs until
// the process is killed. The program's only observable effects are the
// bytes it reads from standard input and writes to standard output.
//
// Cursor movement past either end of the tape is undefined behavior: the
// generated code performs no bounds checks, matching the language's
// traditional semantics. Run only fails if the executable mapping cannot
// be set up.
func (e *Engine) Run() error {
	_, err := e.RunTape()
	return err
}

// RunTape is Run, but hands back the final tape contents for inspection.
func (e *Engine) RunTape() ([]byte, error) {
	tape := make([]byte, e.tapeSize)
	if err := invoke(e.code, tape); err != nil {
		return nil, err
	}
	return tape, nil
}

// Dump writes the instruction listing to w. See program.Program.Dump.
func (e *Engine) Dump(w io.Writer) {
	e.prog.Dump(w)
}

// DumpCode writes the raw generated machine code to w.
func (e *Engine) DumpCode(w io.Writer) error {
	_, err := w.Write(e.code)
	return err
}
