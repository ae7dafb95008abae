package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gobf/pkg/bf"
	"gobf/pkg/utils"
)

func main() {
	tapeSize := flag.Int("tape", bf.DefaultTapeSize, "tape size in cells")
	dump := flag.Bool("dump", false, "print the instruction listing instead of running")
	dumpCode := flag.Bool("dump-code", false, "write the raw generated machine code to stdout instead of running")
	flag.Parse()

	if flag.NArg() != 1 {
		progname := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.bf>\n", progname)
		flag.PrintDefaults()
		os.Exit(2)
	}

	source, fullPath, err := utils.ReadProgram(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read program: %v\n", err)
		os.Exit(1)
	}

	eng, err := bf.New(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compiling %s failed: %v\n", fullPath, err)
		os.Exit(1)
	}

	if err := eng.SetTapeSize(*tapeSize); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *dump {
		eng.Dump(os.Stdout)
		return
	}
	if *dumpCode {
		if err := eng.DumpCode(os.Stdout); err != nil {
			log.Fatalf("dumping code failed: %v", err)
		}
		return
	}

	if err := eng.Run(); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
