package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/source"
)

// expectation is the outcome a script declares about itself.
type expectation struct {
	fails bool
	value string // printed output, or a substring of the failure
}

var expectRegex = regexp.MustCompile(`^#\s*(expect(?:_error)?):\s*(.*)`)

// parseExpectation looks for a line like
//
//	# expect: 1 2 3
//	# expect_error: unexpected token
//
// The values of "expect" are the printed results separated by spaces.
func parseExpectation(content string) (*expectation, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		m := expectRegex.FindStringSubmatch(scanner.Text())
		if len(m) != 3 {
			continue
		}
		return &expectation{
			fails: m[1] == "expect_error",
			value: strings.TrimSpace(m[2]),
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script content: %w", err)
	}
	return nil, fmt.Errorf("no expectation comment found (e.g., # expect: value)")
}

func TestScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.calc"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no scripts in testdata")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read script file %q: %v", path, err)
			}
			exp, err := parseExpectation(string(content))
			if err != nil {
				t.Fatalf("%s: %v", path, err)
			}

			var out bytes.Buffer
			ok := newCalc(zap.NewNop()).eval(&out, source.FromFile(path, string(content)))

			if exp.fails {
				if ok {
					t.Fatalf("expected failure containing %q, got output:\n%s", exp.value, out.String())
				}
				if !strings.Contains(out.String(), exp.value) {
					t.Errorf("expected failure containing %q, got:\n%s", exp.value, out.String())
				}
				return
			}
			if !ok {
				t.Fatalf("unexpected failure:\n%s", out.String())
			}
			got := strings.Join(strings.Fields(out.String()), " ")
			if got != exp.value {
				t.Errorf("wrong output. expected=%q, got=%q", exp.value, got)
			}
		})
	}
}
