package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/docbridge/config"
	"github.com/wippyai/docbridge/foreign/foreigntest"
	"github.com/wippyai/docbridge/itext/kernel"
	"github.com/wippyai/docbridge/runtime"
	"github.com/wippyai/docbridge/wire"
)

func main() {
	var (
		outFile     = flag.String("out", "", "Write the rendered PDF to this file")
		page        = flag.String("page", "A4", "Page size preset")
		title       = flag.String("title", "Invoice", "Document title")
		items       = flag.String("items", "Widget=2.50,Gadget=7.00", "Line items (NAME=PRICE,...)")
		code        = flag.String("ean", "", "EAN-13 code to print under the table (optional)")
		dryRun      = flag.Bool("dry-run", false, "Use the in-process reference runtime instead of a guest")
		presets     = flag.Bool("presets", false, "List page size presets and exit")
		schema      = flag.Bool("schema", false, "Print the configuration JSON schema and exit")
		interactive = flag.Bool("i", false, "Interactive page size explorer")
	)
	flag.Parse()

	if *schema {
		b, err := config.Schema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	if *outFile == "" && !*presets && !*interactive && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Usage: docbridge [-dry-run] -out <file.pdf> [-page A4] [-title s] [-items N=P,...] [-ean code]")
		fmt.Fprintln(os.Stderr, "       docbridge [-dry-run] -presets")
		fmt.Fprintln(os.Stderr, "       docbridge [-dry-run] -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       docbridge -schema")
		os.Exit(1)
	}

	if err := run(options{
		out:         *outFile,
		page:        *page,
		title:       *title,
		items:       *items,
		ean:         *code,
		dryRun:      *dryRun,
		presets:     *presets,
		interactive: *interactive,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	out, page, title, items, ean string
	dryRun, presets, interactive bool
}

func run(opts options) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	runtime.SetLogger(logger)
	wire.SetLogger(logger)

	rt, err := openRuntime(ctx, cfg, opts.dryRun || cfg.DryRun, logger)
	if err != nil {
		return fmt.Errorf("open runtime: %w", err)
	}
	defer func() { _ = rt.Close(ctx) }()

	env := rt.Attach(ctx)
	defer env.Detach()

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(env)
	}

	if opts.presets {
		list, err := listPresets(env)
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Printf("  %-10s %7.1f x %7.1f\n", p.preset, p.width, p.height)
		}
		return nil
	}

	preset, ok := kernel.ParsePageSizePreset(opts.page)
	if !ok {
		return fmt.Errorf("unknown page size %q (see -presets)", opts.page)
	}
	lines, err := parseItems(opts.items)
	if err != nil {
		return err
	}

	pdf, err := render(env, invoice{
		title:  opts.title,
		page:   preset,
		lines:  lines,
		ean:    opts.ean,
		footer: "Generated by docbridge",
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("rendered document", zap.Int("bytes", len(pdf)), zap.Stringer("page", preset))

	if opts.out == "" {
		_, err = os.Stdout.Write(pdf)
		return err
	}
	if err := os.WriteFile(opts.out, pdf, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", opts.out, len(pdf))
	return nil
}

func openRuntime(ctx context.Context, cfg *config.Config, dryRun bool, logger *zap.Logger) (*runtime.Runtime, error) {
	var opts []runtime.Option
	opts = append(opts, runtime.WithLogger(logger))
	if dryRun {
		if cfg.ConstantCache {
			opts = append(opts, runtime.WithConstantCache())
		}
		ref := foreigntest.New(foreigntest.WithLogger(logger))
		return runtime.NewWithDispatcher(wire.Loopback(ref, wire.WithClientLogger(logger)), opts...), nil
	}
	return runtime.Open(ctx, cfg, opts...)
}

func parseItems(s string) ([]lineItem, error) {
	var out []lineItem
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, price, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid item %q, want NAME=PRICE", part)
		}
		out = append(out, lineItem{name: name, price: price})
	}
	return out, nil
}
