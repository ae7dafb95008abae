//go:build linux && amd64

package bf

import (
	"bytes"
	"io"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"gobf/pkg/codegen"
	"gobf/pkg/program"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// captureStdout redirects fd 1 to a pipe around f. The generated code
// writes with raw syscalls, so swapping os.Stdout alone would not catch
// its output.
func captureStdout(t *testing.T, f func() error) []byte {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	saved, err := unix.Dup(1)
	if err != nil {
		t.Fatalf("dup stdout: %v", err)
	}
	if err := unix.Dup3(int(w.Fd()), 1, 0); err != nil {
		t.Fatalf("redirect stdout: %v", err)
	}

	ferr := f()

	if err := unix.Dup3(saved, 1, 0); err != nil {
		t.Fatalf("restore stdout: %v", err)
	}
	unix.Close(saved)
	w.Close()

	out, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	if ferr != nil {
		t.Fatalf("run failed: %v", ferr)
	}
	return out
}

// feedStdin redirects fd 0 to a pipe preloaded with input around f.
// Closing the write end first leaves EOF after the preloaded bytes.
func feedStdin(t *testing.T, input []byte, f func() error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if _, err := w.Write(input); err != nil {
		t.Fatalf("preload stdin: %v", err)
	}
	w.Close()

	saved, err := unix.Dup(0)
	if err != nil {
		t.Fatalf("dup stdin: %v", err)
	}
	if err := unix.Dup3(int(r.Fd()), 0, 0); err != nil {
		t.Fatalf("redirect stdin: %v", err)
	}

	ferr := f()

	if err := unix.Dup3(saved, 0, 0); err != nil {
		t.Fatalf("restore stdin: %v", err)
	}
	unix.Close(saved)
	r.Close()
	if ferr != nil {
		t.Fatalf("run failed: %v", ferr)
	}
}

func TestRunHelloWorld(t *testing.T) {
	eng, err := New(helloWorld)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := captureStdout(t, eng.Run)
	if got, want := string(out), "Hello World!\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestRunTapeContents(t *testing.T) {
	eng, err := New("+++[>++<-]>")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := eng.SetTapeSize(16); err != nil {
		t.Fatalf("SetTapeSize failed: %v", err)
	}

	tape, err := eng.RunTape()
	if err != nil {
		t.Fatalf("RunTape failed: %v", err)
	}
	if len(tape) != 16 {
		t.Fatalf("tape length = %d; want 16", len(tape))
	}
	if tape[0] != 0 || tape[1] != 6 {
		t.Errorf("tape = %v; want cell 0 = 0, cell 1 = 6", tape[:4])
	}
}

func TestRunCellWraparound(t *testing.T) {
	// 300 increments on a byte cell leave 300 mod 256 = 44.
	eng, err := New(string(bytes.Repeat([]byte{'+'}, 300)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := eng.SetTapeSize(8); err != nil {
		t.Fatalf("SetTapeSize failed: %v", err)
	}

	tape, err := eng.RunTape()
	if err != nil {
		t.Fatalf("RunTape failed: %v", err)
	}
	if tape[0] != 44 {
		t.Errorf("cell 0 = %d; want 44", tape[0])
	}
}

func TestRunInput(t *testing.T) {
	eng, err := New(",+.")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out []byte
	feedStdin(t, []byte("A"), func() error {
		out = captureStdout(t, eng.Run)
		return nil
	})
	if got, want := string(out), "B"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestRunInputEOFLeavesCellUnchanged(t *testing.T) {
	// read(2) returns zero at EOF without touching the buffer, so the
	// cell keeps its prior value.
	eng, err := New("++,.")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out []byte
	feedStdin(t, nil, func() error {
		out = captureStdout(t, eng.Run)
		return nil
	})
	if len(out) != 1 || out[0] != 2 {
		t.Errorf("output = %v; want [2]", out)
	}
}

// expand builds the one-instruction-per-symbol form of source, bypassing
// run-length collapsing, to check that collapsing preserves behavior.
func expand(t *testing.T, source string) program.Program {
	t.Helper()

	var insts program.Program
	var stack []int
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '>':
			insts = append(insts, program.Instruction{Op: program.OpMoveRight, Amount: 1})
		case '<':
			insts = append(insts, program.Instruction{Op: program.OpMoveLeft, Amount: 1})
		case '+':
			insts = append(insts, program.Instruction{Op: program.OpAddCell, Amount: 1})
		case '-':
			insts = append(insts, program.Instruction{Op: program.OpSubCell, Amount: 1})
		case '.':
			insts = append(insts, program.Instruction{Op: program.OpOutput})
		case ',':
			insts = append(insts, program.Instruction{Op: program.OpInput})
		case '[':
			stack = append(stack, len(insts))
			insts = append(insts, program.Instruction{Op: program.OpJumpIfZero})
		case ']':
			if len(stack) == 0 {
				t.Fatalf("unbalanced test source %q", source)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			insts[open].Target = len(insts)
			insts = append(insts, program.Instruction{Op: program.OpJumpIfNonZero, Target: open})
		}
	}
	if len(stack) != 0 {
		t.Fatalf("unbalanced test source %q", source)
	}
	return insts
}

func TestCollapsingEquivalence(t *testing.T) {
	sources := []string{
		"+++++>++>+<<<",
		"+++[>++<-]>.",
		"++++[->++++[->++<]<]>>.",
	}

	for _, source := range sources {
		collapsed, err := program.Build(source)
		if err != nil {
			t.Fatalf("Build(%q) failed: %v", source, err)
		}
		expanded := expand(t, source)

		collapsedTape := make([]byte, 64)
		expandedTape := make([]byte, 64)

		collapsedOut := captureStdout(t, func() error {
			return invoke(codegen.Compile(collapsed), collapsedTape)
		})
		expandedOut := captureStdout(t, func() error {
			return invoke(codegen.Compile(expanded), expandedTape)
		})

		if !bytes.Equal(collapsedOut, expandedOut) {
			t.Errorf("source %q: collapsed output %v != expanded output %v",
				source, collapsedOut, expandedOut)
		}
		if !bytes.Equal(collapsedTape, expandedTape) {
			t.Errorf("source %q: collapsed and expanded runs left different tapes",
				source)
		}
	}
}
