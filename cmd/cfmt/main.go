package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/teleivo/cfmt"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string, r io.Reader, w io.Writer) error {
	fs := flag.NewFlagSet("cfmt", flag.ContinueOnError)
	width := fs.Int("width", 0, "column limit, defaults to the config file's code_width (80 when unset) with -config, otherwise to the terminal width, then 80")
	config := fs.String("config", "", "path to a YAML options file")
	debug := fs.Bool("debug", false, "enable debug logging on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := cfmt.DefaultOptions()
	if *config != "" {
		var err error
		opts, err = cfmt.LoadOptions(*config)
		if err != nil {
			return err
		}
	} else if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		opts.CodeWidth = tw
	}
	if *width > 0 {
		opts.CodeWidth = *width
	}

	return cfmt.Format(r, w, opts)
}
