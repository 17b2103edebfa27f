// Command lexcalc is a small calculator built on the lexkit cursors. It
// evaluates an expression given with -e, a script file, or lines typed at a
// prompt, and prints parse failures with the offending source line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/source"
)

func main() {
	exprFlag := flag.String("e", "", "Evaluate the given expression and exit")
	verboseFlag := flag.Bool("v", false, "Log tokenizer and parser activity to stderr")
	flag.Parse()

	log := zap.NewNop()
	if *verboseFlag {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %s\n", err)
			os.Exit(70)
		}
		defer l.Sync()
		log = l
	}
	c := newCalc(log)

	switch {
	case *exprFlag != "":
		if !c.eval(os.Stdout, source.FromString(*exprFlag)) {
			os.Exit(70)
		}
	case flag.NArg() > 1:
		fmt.Fprintf(os.Stderr, "Usage: lexcalc [script] or lexcalc -e \"expression\"\n")
		os.Exit(64) // command line usage error
	case flag.NArg() == 1:
		path := flag.Arg(0)
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read file '%s': %s\n", path, err)
			os.Exit(70)
		}
		if !c.eval(os.Stdout, source.FromFile(path, string(content))) {
			os.Exit(70)
		}
	default:
		c.repl(os.Stdin, os.Stdout)
	}
}

// eval runs f and prints one value per statement, or the failure. It reports
// whether evaluation succeeded.
func (c *calc) eval(w io.Writer, f *source.File) bool {
	values, err := c.run(f.Content)
	if err != nil {
		errors.Display(w, f, err)
		return false
	}
	for _, v := range values {
		fmt.Fprintln(w, format(v))
	}
	return true
}

// repl evaluates one line at a time until in is exhausted. Variables carry
// over between lines.
func (c *calc) repl(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "lexcalc (Ctrl+D to exit)")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.eval(out, source.FromString(line))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(out, "\nError reading input: %s\n", err)
		return
	}
	fmt.Fprintln(out, "\nGoodbye!")
}
