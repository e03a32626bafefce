package main

import (
	"jvavsprict/interpreter"
)

// runSource is used for normal file execution (fresh interpreter each time).
func runSource(filename, src string) {
	in := interpreter.NewWithSource(filename, src)
	in.Run()
}

// runChunkWith runs code using an existing interpreter instance.
// This is what makes the REPL stateful across inputs.
func runChunkWith(in *interpreter.Interpreter, filename, src string) {
	in.SetSource(filename, src)
	in.RunChunk()
}
