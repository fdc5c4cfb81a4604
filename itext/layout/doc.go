// Package layout wraps com.itextpdf.layout, the high-level document model.
//
// iText's element classes share capabilities through a lattice of
// interfaces. Here the same lattice is built from embedded generic traits:
// PropertyContainer[T] for styling, BlockElement[T] for sizing and
// RootElement[T] for containers that accept blocks. A trait method performs
// one foreign call and returns the concrete wrapper, so calls chain:
//
//	p, err := layout.NewParagraphText(env, "Total")
//	if _, err = p.SetBold(env); err != nil { ... }
//	if _, err = doc.Add(env, p); err != nil { ... }
//
// Style and Size run a sequence of setters and keep the first error:
//
//	err := layout.Style(env, p).Bold().FontSize(14).TextAlignment(layout.TextAlignmentCenter).Err()
//
// Setters already applied before a failure are not rolled back.
package layout
