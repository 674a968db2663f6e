// Command jsoncst is a thin CLI host over the parse/tokenize/hash public
// API (spec.md §6.1), in the same spirit as the teacher shipping cmd/devcmd
// and cmd/devcmd-parser as standalone consumers of its own parser/lexer
// packages rather than folding CLI concerns into the core.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/greenio"
	"github.com/jsonwc/cst/lexer"
	"github.com/jsonwc/cst/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var file string
	var noSuggestions bool

	root := &cobra.Command{
		Use:           "jsoncst",
		Short:         "Parse, tokenize, and hash JSON-with-comments documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&file, "file", "f", "-", `input file path, or "-" for stdin`)
	root.PersistentFlags().BoolVar(&noSuggestions, "no-suggestions", false, `disable "did you mean" fuzzy hints`)

	root.AddCommand(newParseCmd(&file, &noSuggestions))
	root.AddCommand(newTokensCmd(&file))
	root.AddCommand(newHashCmd(&file, &noSuggestions))
	root.AddCommand(newWatchCmd(&file, &noSuggestions))
	return root
}

func readSource(file string) (string, error) {
	if file == "-" || file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(data), nil
}

func parseOpts(noSuggestions bool) []parser.Opt {
	return []parser.Opt{parser.WithSuggestions(!noSuggestions)}
}

func newParseCmd(file *string, noSuggestions *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Parse the input and print its diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(*file)
			if err != nil {
				return err
			}
			root := parser.Parse(src, parseOpts(*noSuggestions)...)
			printDiagnostics(cmd.OutOrStdout(), root.Errors)
			return nil
		},
	}
}

func newTokensCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "Print the token stream produced by the tokenizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(*file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			offset := 0
			for _, sym := range lexer.TokenizeAll(src) {
				fmt.Fprintf(out, "%-28s [%d,%d)\n", sym.Kind, offset, offset+sym.Width)
				offset += sym.Width
			}
			return nil
		},
	}
}

func newHashCmd(file *string, noSuggestions *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Print the BLAKE2b-256 content hash of the parsed tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(*file)
			if err != nil {
				return err
			}
			root := parser.Parse(src, parseOpts(*noSuggestions)...)
			digest, err := greenio.Hash(root)
			if err != nil {
				return fmt.Errorf("hashing tree: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(digest[:]))
			return nil
		},
	}
}

func newWatchCmd(file *string, noSuggestions *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-parse the file on every write and print its diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *file == "-" || *file == "" {
				return fmt.Errorf("watch requires --file, stdin cannot be watched")
			}
			return runWatch(cmd, *file, *noSuggestions)
		},
	}
}

// runWatch re-parses path on every write and prints the resulting
// diagnostics, the minimal host-facing hook a real settings-editor
// integration would use without pulling in a full autosave engine.
func runWatch(cmd *cobra.Command, path string, noSuggestions bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	out := cmd.OutOrStdout()
	reparse := func() {
		src, err := readSource(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		root := parser.Parse(src, parseOpts(noSuggestions)...)
		fmt.Fprintf(out, "-- %s --\n", path)
		printDiagnostics(out, root.Errors)
	}
	reparse()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reparse()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		case <-sigChan:
			return nil
		}
	}
}

func printDiagnostics(w io.Writer, errs []diag.Error) {
	if len(errs) == 0 {
		fmt.Fprintln(w, "no diagnostics")
		return
	}
	for _, e := range errs {
		fmt.Fprintf(w, "%s@[%d,%d) %s\n", e.Code, e.Start, e.Start+e.Length, e.Level)
	}
}
