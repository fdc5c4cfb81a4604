// Package bundle packs the foreign library into a compressed, checksummed
// archive and installs it on the host.
//
// cmd/bundle writes the archive to bundle/dependencies.bin. Building with
// the bundled tag embeds it as Dependencies:
//
//	go run ./cmd/bundle -in itext.wasm -codec zstd
//	go build -tags bundled ./cmd/docbridge
//
// Install writes the payload to a content-addressed path so several
// versions can share a directory, and ClassPathOption formats such paths
// for hosts that take a JVM class path.
package bundle
