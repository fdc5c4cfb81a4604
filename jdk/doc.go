// Package jdk wraps the handful of java.io, java.awt and javax.imageio
// classes the PDF catalog needs to move bytes and images across the boundary.
//
//	out, err := jdk.NewByteArrayOutputStream(env)
//	// ... write a document into out ...
//	pdf, err := out.ToByteArray(env)
package jdk
