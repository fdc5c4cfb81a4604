//go:build bundled

package bundle

import _ "embed"

// Dependencies is the packed dependency archive, produced by cmd/bundle as
// dependencies.bin next to this file.
//
//go:embed dependencies.bin
var Dependencies []byte
