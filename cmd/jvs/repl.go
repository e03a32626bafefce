package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"jvavsprict/interpreter"
)

func runREPL() error {
	home, _ := os.UserHomeDir()
	histPath := ""
	if home != "" {
		histPath = filepath.Join(home, ".jvs_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "jvs> ",
		HistoryFile:            histPath,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: false,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("JvavSprict REPL — :help for commands, :quit to exit.")
	fmt.Println("Multi-line func blocks supported; input runs once braces balance.")
	fmt.Println()

	// Single interpreter for the whole REPL session (stateful).
	session := interpreter.New()

	var buf strings.Builder
	depth := 0
	chunk := 0

	for {
		rl.SetPrompt(replPrompt(depth))

		line, err := rl.Readline()

		// Ctrl+C
		if err == readline.ErrInterrupt {
			if buf.Len() > 0 || depth > 0 {
				buf.Reset()
				depth = 0
				fmt.Println("^C (buffer cleared)")
			}
			continue
		}

		// Ctrl+D
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		trim := strings.TrimSpace(line)

		// Commands only when not buffering a block.
		if depth == 0 && buf.Len() == 0 && strings.HasPrefix(trim, ":") {
			handled, cmdErr := handleREPLCommand(trim, &buf, &depth, session)
			if handled {
				if cmdErr != nil {
					fmt.Fprintln(os.Stderr, cmdErr.Error())
				}
				continue
			}
		}

		// Accumulate input.
		buf.WriteString(line)
		buf.WriteString("\n")

		depth = updateDepth(depth, trim)
		if depth > 0 {
			continue
		}

		src := buf.String()
		if strings.TrimSpace(src) == "" {
			buf.Reset()
			continue
		}
		buf.Reset()

		chunk++
		runChunkWith(session, fmt.Sprintf("<repl:%d>", chunk), src)
	}
}

func replPrompt(depth int) string {
	if depth > 0 {
		return "...> "
	}
	return "jvs> "
}

func handleREPLCommand(
	cmd string,
	buf *strings.Builder,
	depth *int,
	session *interpreter.Interpreter,
) (bool, error) {
	switch {
	case cmd == ":q" || cmd == ":quit" || cmd == ":exit":
		os.Exit(0)
		return true, nil

	case cmd == ":h" || cmd == ":help":
		fmt.Println("Commands:")
		fmt.Println("  :help              Show this help")
		fmt.Println("  :quit              Exit the REPL")
		fmt.Println("  :load <file>       Run a .jvs file (fresh interpreter, like CLI)")
		fmt.Println("  :reset             Clear buffered multi-line input")
		fmt.Println("  :clear             Clear the screen")
		fmt.Println("  :vars              Show bound variables (REPL session)")
		fmt.Println("  :funcs             Show registered functions (REPL session)")
		fmt.Println()
		fmt.Println("Notes:")
		fmt.Println("  - func blocks buffer until their braces balance.")
		fmt.Println("  - REPL input shares state across runs (vars/functions persist).")
		return true, nil

	case strings.HasPrefix(cmd, ":load "):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":load "))
		if path == "" {
			return true, fmt.Errorf("Usage: :load <file.jvs>")
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return true, fmt.Errorf("Failed to read %s: %s", path, err.Error())
		}

		// Load runs like the CLI: fresh interpreter for the file.
		runSource(filepath.Base(path), string(b))
		return true, nil

	case cmd == ":reset":
		buf.Reset()
		*depth = 0
		fmt.Println("(buffer cleared)")
		return true, nil

	case cmd == ":clear":
		fmt.Print("\033[2J\033[H")
		return true, nil

	case cmd == ":vars":
		vars := session.VarsSnapshot()
		if len(vars) == 0 {
			fmt.Println("(no variables)")
			return true, nil
		}
		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, vars[k].ToString())
		}
		return true, nil

	case cmd == ":funcs":
		names := session.FuncNames()
		if len(names) == 0 {
			fmt.Println("(no functions)")
			return true, nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return true, nil

	default:
		fmt.Println("Unknown command. Try :help")
		return true, nil
	}
}

// updateDepth tracks brace balance the same way function body extraction
// does: textually, per line.
func updateDepth(depth int, trimmed string) int {
	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return depth
	}
	depth += strings.Count(trimmed, "{")
	depth -= strings.Count(trimmed, "}")
	if depth < 0 {
		return 0
	}
	return depth
}
