// Command sml is the interactive front end described in specification §6:
// with no file arguments it reads from standard input one item at a time;
// with one or more file arguments it processes each in turn, then exits.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sml-lang/sml/internal/backend"
	"github.com/sml-lang/sml/internal/config"
	"github.com/sml-lang/sml/internal/session"
	"github.com/sml-lang/sml/pkg/repl"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	backend.RealPrecision = cfg.RealPrecision

	args := os.Args[1:]
	if len(args) == 0 {
		runInteractive(cfg)
		return
	}
	runFiles(cfg, args)
}

func runInteractive(cfg *config.Config) {
	sess := session.New(cfg)
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		// Piped input: prompts would only clutter a captured transcript.
		cfg.Prompt = ""
		cfg.ContinuationPrompt = ""
	}
	r := repl.New(sess, cfg, os.Stdout)
	r.Interactive(os.Stdin)
}

// runFiles processes each file against its own fresh Session (§6 names no
// state shared across files), exiting non-zero only on I/O failure; a
// syntax or type error inside a file never changes the exit code.
func runFiles(cfg *config.Config, paths []string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sess := session.New(cfg)
		r := repl.New(sess, cfg, os.Stdout)
		r.File(string(data))
	}
}
