package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/kailas-cloud/scandex"
)

// repl reads queries from stdin until EOF or :quit. The prompt only
// shows on a TTY, so piped input stays clean.
func repl(ctx context.Context, engine *scandex.Engine, records []any, opts *scandex.SearchOptions, asJSON bool) error {
	tty := term.IsTerminal(int(os.Stdin.Fd()))
	if tty {
		fmt.Printf("scandex: %d records loaded, :help for commands\n", len(records))
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if tty {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			if tty {
				fmt.Println()
			}
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ":") {
			if quit := command(engine, line); quit {
				return nil
			}
			continue
		}

		start := time.Now()
		results, err := engine.Search(ctx, records, line, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if err := printResults(os.Stdout, results, time.Since(start), asJSON); err != nil {
			return err
		}
	}
}

// command handles a :-prefixed REPL directive, reporting whether to
// quit.
func command(engine *scandex.Engine, line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":stats":
		printStats(os.Stdout, engine.CacheStats())
	case ":clear":
		engine.ClearCaches()
		fmt.Println("caches cleared")
	case ":help":
		fmt.Print(`type a query to search, an empty line lists every record
  :stats  cache occupancy
  :clear  drop memoized state
  :quit   exit (also :q or Ctrl-D)
`)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s, try :help\n", line)
	}
	return false
}
