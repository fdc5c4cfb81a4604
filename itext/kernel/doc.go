// Package kernel wraps com.itextpdf.kernel: the low-level PDF document, its
// pages and canvases, geometry, colors and fonts.
//
// A minimal document:
//
//	out, _ := jdk.NewByteArrayOutputStream(env)
//	w, _ := kernel.NewPdfWriter(env, out)
//	pdf, _ := kernel.NewPdfDocument(env, w)
//	page, _ := pdf.AddNewPage(env)
//	_ = pdf.Close(env)
//	data, _ := out.ToByteArray(env)
//
// The bytes in the output stream form a complete PDF only after Close.
package kernel
