// Package iodata wraps com.itextpdf.io: raw image data, font programs and the
// string constants naming the standard fonts and encodings.
package iodata
