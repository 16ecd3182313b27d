// The filtres command compiles filter expressions into Elasticsearch
// filtered query documents, one json document per line.
//
//    filtres 'height < 73 or favorites.color == "green"'
//    echo 'height == 73' | filtres --pretty
//
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	u "github.com/araddon/gou"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/araddon/filtres"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	cfg, err := LoadConfig(fs, args)
	if err != nil {
		if errors.Cause(err) == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "filtres: %v\n", err)
		return 2
	}
	u.SetupLogging(cfg.LogLevel)

	c, err := filtres.New()
	if err != nil {
		fmt.Fprintf(stderr, "filtres: %v\n", err)
		return 2
	}

	if cfg.Schema {
		return write(stdout, stderr, c.Schema(), cfg.Pretty)
	}

	exprs := fs.Args()
	if len(exprs) == 0 {
		exprs, err = readLines(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "filtres: %v\n", errors.Wrap(err, "reading stdin"))
			return 2
		}
	}

	status := 0
	for _, e := range exprs {
		if cfg.AST {
			tree, err := c.Parse(e)
			if err != nil {
				status = reject(stderr, e, err)
				continue
			}
			fmt.Fprintln(stdout, tree.String())
			continue
		}
		by, err := c.CompileJSON(e)
		if err != nil {
			status = reject(stderr, e, err)
			continue
		}
		if write(stdout, stderr, by, cfg.Pretty) != 0 {
			status = 1
		}
	}
	return status
}

func reject(stderr io.Writer, e string, err error) int {
	err = errors.Wrapf(err, "rejected %q", e)
	u.Debugf("%v", err)
	fmt.Fprintf(stderr, "filtres: %v\n", err)
	return 1
}

func write(stdout, stderr io.Writer, by []byte, pretty bool) int {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, by, "", "  "); err != nil {
			fmt.Fprintf(stderr, "filtres: %v\n", err)
			return 1
		}
		by = buf.Bytes()
	}
	fmt.Fprintln(stdout, string(by))
	return 0
}

// readLines one expression per non blank line
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
