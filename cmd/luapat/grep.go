package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/luapat"
)

// grep applies one pattern to the lines of its inputs.
type grep struct {
	pattern *luapat.Pattern
	tmpl    *luapat.Template
	opts    options
	out     *bufio.Writer
	logger  *slog.Logger
}

func (g *grep) scanFile(name string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return g.scan(name, f)
}

// scan processes r line by line and reports whether any line matched.
// name prefixes the output when more than one file is searched.
func (g *grep) scan(name string, r io.Reader) (bool, error) {
	prefix := ""
	if len(g.opts.files) > 1 {
		prefix = name + ":"
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	lines, matching := 0, 0
	for sc.Scan() {
		line := sc.Bytes()
		lines++
		ok, err := g.line(prefix, line)
		if err != nil {
			return matching > 0, fmt.Errorf("%s line %d: %w", displayName(name), lines, err)
		}
		if ok {
			matching++
		}
	}
	if err := sc.Err(); err != nil {
		return matching > 0, fmt.Errorf("read %s: %w", displayName(name), err)
	}

	if g.opts.count {
		fmt.Fprintf(g.out, "%s%d\n", prefix, matching)
	}
	g.logger.Debug("scanned input", "name", displayName(name), "lines", lines, "matching", matching)
	return matching > 0, nil
}

// line handles one input line and reports whether it matched.
func (g *grep) line(prefix string, line []byte) (bool, error) {
	switch {
	case g.tmpl != nil:
		out, n, err := g.pattern.GsubTemplate(line, g.tmpl, -1)
		if err != nil {
			return false, err
		}
		g.write(prefix, out)
		return n > 0, nil

	case g.opts.onlyMatching:
		found := false
		for v, err := range g.pattern.Gmatch(string(line)) {
			if err != nil {
				return found, err
			}
			found = true
			g.write(prefix, []byte(v))
		}
		return found, nil

	default:
		ok, err := g.pattern.Match(line)
		if err != nil {
			return false, err
		}
		if ok && !g.opts.count {
			g.write(prefix, line)
		}
		return ok, nil
	}
}

func (g *grep) write(prefix string, b []byte) {
	g.out.WriteString(prefix)
	g.out.Write(b)
	g.out.WriteByte('\n')
}

func displayName(name string) string {
	if name == "" {
		return "(standard input)"
	}
	return name
}
