// Command bundle packs a guest build into bundle/dependencies.bin.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wippyai/docbridge/bundle"
)

func main() {
	var (
		inFile  = flag.String("in", "", "Guest wasm file to pack")
		outFile = flag.String("out", filepath.Join("bundle", "dependencies.bin"), "Archive to write")
		codec   = flag.String("codec", "zstd", "Compression: none, zstd, lz4, brotli")
		force   = flag.Bool("f", false, "Rewrite the archive even when the payload is unchanged")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: bundle -in <guest.wasm> [-out bundle/dependencies.bin] [-codec zstd]")
		os.Exit(1)
	}

	if err := run(*inFile, *outFile, *codec, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, codecName string, force bool) error {
	codec, err := bundle.ParseCodec(codecName)
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	archive, err := bundle.Pack(payload, codec)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	if !force {
		if prev, err := os.ReadFile(out); err == nil && bundle.Same(prev, archive) {
			fmt.Printf("%s is up to date\n", out)
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(out, archive, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	h, err := bundle.ReadHeader(archive)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %s, %d -> %d bytes, sha256 %s\n", out, codec, len(payload), len(archive), h.DigestHex())
	return nil
}
