package main

import (
	"fmt"
	"os"
	"path/filepath"

	"jvavsprict/interpreter"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  jvs <file.jvs>")
	fmt.Println("  jvs run <file.jvs>")
	fmt.Println("  jvs repl")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Please give a JvavSprict file path, example: jvs demo.jvs")
		usage()
	}

	args := os.Args[1:]

	var filename string

	switch args[0] {
	case "repl":
		if err := runREPL(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return

	case "run":
		// Allow: jvs run file.jvs
		if len(args) != 2 {
			usage()
		}
		filename = args[1]

	default:
		// Allow: jvs file.jvs
		filename = args[0]
	}

	fmt.Println("Launching JvavSprict...")

	src, err := os.ReadFile(filename)
	if err != nil {
		interpreter.Report(os.Stderr, fmt.Errorf("file not found: %s", filename))
		os.Exit(1)
	}

	runSource(filepath.Base(filename), string(src))

	// Reported script errors do not change the exit status; only a missing
	// or unreadable file does.
	fmt.Println("\nProcess finished.")
}
