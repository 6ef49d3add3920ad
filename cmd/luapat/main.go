// Command luapat searches and rewrites text with Lua patterns.
//
// Usage:
//
//	luapat [options] PATTERN [FILE...]
//
// Without options it prints the lines containing a match. With -o it
// prints what Lua's gmatch yields for every match, with -c the number of
// matching lines, and with -gsub every line rewritten by a gsub template.
// Standard input is read when no file is given. The exit status is 0 when
// something matched, 1 when nothing did and 2 on error.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/luapat"
	"github.com/coregx/luapat/meta"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// maxLine bounds the length of one input line.
const maxLine = 16 * 1024 * 1024

type options struct {
	onlyMatching bool
	count        bool
	gsub         string
	doGsub       bool
	configPath   string
	verbose      bool
	pattern      string
	files        []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}
		return exitError
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	config := luapat.DefaultConfig()
	if opts.configPath != "" {
		config, err = loadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		logger.Debug("loaded config", "path", opts.configPath, "max_depth", config.MaxDepth, "max_captures", config.MaxCaptures)
	}

	p, err := luapat.CompileWithConfig([]byte(opts.pattern), config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	var tmpl *luapat.Template
	if opts.doGsub {
		if tmpl, err = luapat.ParseTemplate(opts.gsub); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	logger.Debug("compiled pattern",
		"pattern", p.String(),
		"captures", p.NumCaptures(),
		"strategy", p.Engine().Strategy().String())

	g := &grep{
		pattern: p,
		tmpl:    tmpl,
		opts:    opts,
		out:     bufio.NewWriter(stdout),
		logger:  logger,
	}
	defer g.out.Flush()

	matched := false
	var runErr error
	if len(opts.files) == 0 {
		matched, runErr = g.scan("", stdin)
	} else {
		for _, name := range opts.files {
			ok, err := g.scanFile(name)
			matched = matched || ok
			if err != nil {
				runErr = err
				break
			}
		}
	}

	stats := p.Stats()
	logger.Debug("search statistics",
		"searches", stats.Searches,
		"prefilter_candidates", stats.PrefilterCandidates,
		"prefilter_misses", stats.PrefilterMisses,
		"prefilter_abandoned", stats.PrefilterAbandoned,
		"literal_hits", stats.LiteralHits)

	if runErr != nil {
		g.out.Flush()
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return exitError
	}
	if !matched {
		return exitNoMatch
	}
	return exitMatch
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("luapat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&opts.onlyMatching, "o", false, "Print only the matches (first capture if any)")
	fs.BoolVar(&opts.count, "c", false, "Print the number of matching lines")
	fs.Func("gsub", "Rewrite every line with a gsub `template` (%0-%9, %%)", func(s string) error {
		opts.gsub = s
		opts.doGsub = true
		return nil
	})
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML engine configuration")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "luapat - search and rewrite text with Lua patterns\n\n")
		fmt.Fprintf(stderr, "Usage: luapat [options] PATTERN [FILE...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  luapat '%%d+' log.txt              Lines containing a number\n")
		fmt.Fprintf(stderr, "  luapat -o '(%%w+)=' conf.ini       Keys of key=value lines\n")
		fmt.Fprintf(stderr, "  luapat -gsub '%%2 %%1' '(%%w+) (%%w+)'   Swap the first two words\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return opts, errors.New("missing pattern")
	}
	if opts.doGsub && (opts.onlyMatching || opts.count) {
		fmt.Fprintln(stderr, "Error: -gsub cannot be combined with -o or -c")
		return opts, errors.New("conflicting flags")
	}
	opts.pattern = fs.Arg(0)
	opts.files = fs.Args()[1:]
	return opts, nil
}

func loadConfig(path string) (meta.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return meta.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return meta.LoadConfig(f)
}
