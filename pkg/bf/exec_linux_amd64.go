//go:build linux && amd64

package bf

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

// invoke copies code into a fresh executable mapping and calls it with
// the tape base address as the second argument, which the generated code
// expects in rsi. The mapping is scoped to the call: it is acquired
// before the copy and released when the call returns or setup fails.
func invoke(code, tape []byte) error {
	mem, err := unix.Mmap(-1, 0, len(code),
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("map executable memory: %w", err)
	}
	defer unix.Munmap(mem)

	copy(mem, code)

	var tapeAddr uintptr
	if len(tape) > 0 {
		tapeAddr = uintptr(unsafe.Pointer(&tape[0]))
	}
	entry := uintptr(unsafe.Pointer(&mem[0]))

	// First argument is unused; the second lands in rsi.
	purego.SyscallN(entry, 0, tapeAddr)
	runtime.KeepAlive(tape)
	return nil
}
