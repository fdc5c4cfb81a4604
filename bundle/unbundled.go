//go:build !bundled

package bundle

// Dependencies is empty unless built with the bundled tag.
var Dependencies []byte
