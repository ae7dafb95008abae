package main

import (
	"log"
	"os"

	"gobf/pkg/bf"
	"gobf/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <program.bf> [--show-dump]", os.Args[0])
	}
	showDump := false
	if len(os.Args) > 2 {
		for _, arg := range os.Args[2:] {
			showDump = arg == "--show-dump"
		}
	}

	source, fullPath, err := utils.ReadProgram(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	eng, err := bf.New(source)
	if err != nil {
		log.Fatalf("Compilation of %s failed: %v", fullPath, err)
	}

	if showDump {
		// Listing goes to stderr so it cannot mix with program output.
		eng.Dump(os.Stderr)
	}

	if err := eng.Run(); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
