// Package repl implements a line-at-a-time front end over compiler.Compile:
// each line gets its own fresh Graph (§5's "never share an arena/pool
// across units" rule applies here too -- a REPL line is just a
// one-statement compilation unit), and its peepholed form is printed
// immediately.
package repl

import (
	"bufio"
	"fmt"
	"os"

	"sonc/internal/compiler"
)

// Start runs the read-compile-print loop until EOF or an "exit" line.
func Start() {
	fmt.Println("sonc REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		u := compiler.Compile("<repl>", line)
		if u.Err != nil {
			fmt.Fprintln(os.Stderr, u.Err)
			continue
		}
		fmt.Print(u.Output)
	}
}

