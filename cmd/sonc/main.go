// Command sonc compiles one or more source files to their Sea-of-Nodes
// graph and prints the peepholed result of each, per §6.1/§6.2.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"sonc/internal/compiler"
	"sonc/internal/repl"
	"sonc/internal/sonerr"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"r": "repl",
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		if alias, ok := commandAliases[args[0]]; ok {
			args[0] = alias
		}
	}

	if len(args) > 0 && args[0] == "repl" {
		repl.Start()
		return
	}
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		fmt.Printf("sonc %s\n", version)
		return
	}

	fs := flag.NewFlagSet("sonc", flag.ExitOnError)
	stats := fs.Bool("stats", false, "print arena/type-pool sizing stats after compiling")
	color := fs.String("color", "auto", "diagnostic color: auto, always, never")
	fs.Usage = showUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"main.sn"}
	}

	useColor := resolveColor(*color)
	exitCode := run(paths, *stats, useColor)
	os.Exit(exitCode)
}

// run compiles every path concurrently (§5: independent units may
// compile in parallel, never sharing an arena/pool/scope) and prints
// results back in argument order, matching a build tool's "fan out,
// report in" discipline.
func run(paths []string, stats bool, useColor bool) int {
	units := make([]*compiler.Unit, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: fatal: %+v", path, r)
				}
			}()
			source, readErr := os.ReadFile(path)
			if readErr != nil {
				return fmt.Errorf("%s: %w", path, readErr)
			}
			units[i] = compiler.Compile(path, string(source))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, colorize(useColor, err.Error()))
		return 1
	}

	exitCode := 0
	for _, u := range units {
		if u.Err != nil {
			fmt.Fprintln(os.Stderr, colorize(useColor, unwrapFatal(u.Err)))
			exitCode = 1
			continue
		}
		fmt.Printf("// %s\n%s\n", u.File, u.Output)
		if stats {
			printStats(u)
		}
	}
	return exitCode
}

func printStats(u *compiler.Unit) {
	fmt.Printf("// %s: %s nodes, %s interned types, %s arena bytes\n",
		u.File,
		humanize.Comma(int64(u.Graph.NodeCount())),
		humanize.Comma(int64(u.Graph.Pool.Len())),
		humanize.Bytes(u.Graph.ArenaBytes()),
	)
}

func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd())
	}
}

func colorize(enabled bool, msg string) string {
	if !enabled {
		return msg
	}
	return "\x1b[31m" + msg + "\x1b[0m"
}

func showUsage() {
	fmt.Println("sonc - Sea-of-Nodes compiler front end")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sonc [-stats] [-color=auto|always|never] [<path>...]   (default path: main.sn)")
	fmt.Println("  sonc repl")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -stats   print type-pool sizing information after compiling")
	fmt.Println("  -color   diagnostic coloring: auto (default), always, never")
}

// unwrapFatal renders a tier-2 fatal invariant violation (§7) with its
// stack trace, distinguishing it from a recoverable *sonerr.ParseError.
func unwrapFatal(err error) string {
	var pe *sonerr.ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return fmt.Sprintf("%+v", err)
}

func init() {
	log.SetFlags(0)
}
