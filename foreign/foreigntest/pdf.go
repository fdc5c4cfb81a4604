package foreigntest

import (
	"fmt"
	"strings"
)

const pdfHeader = "%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"

func writeHeader(out *OutputStream) {
	out.buf.WriteString(pdfHeader)
}

// close writes the document body, cross-reference table and trailer.
// Until close, the output holds only the header.
func (d *pdfDocument) close() {
	if d.closed {
		return
	}
	d.closed = true
	if len(d.pages) == 0 {
		d.addPage(d.defaultSize)
	}

	out := &d.writer.out.buf
	var offsets []int
	obj := func(body string) int {
		offsets = append(offsets, out.Len())
		n := len(offsets)
		fmt.Fprintf(out, "%d 0 obj\n%s\nendobj\n", n, body)
		return n
	}

	// 1 catalog, 2 page tree, 3 font, then a page and its content per page
	kids := make([]string, len(d.pages))
	for i := range d.pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(d.pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, p := range d.pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [%g %g %g %g] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			p.size.x, p.size.y, p.size.x+p.size.w, p.size.y+p.size.h, 5+2*i))
		content := p.content()
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := out.Len()
	fmt.Fprintf(out, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	d.writer.closed = true
}

func (p *pdfPage) content() string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 14 TL")
	fmt.Fprintf(&b, " 36 %g Td", p.size.h-48)
	for _, line := range p.text {
		fmt.Fprintf(&b, " (%s) Tj T*", escapePDF(line))
	}
	b.WriteString(" ET")
	return b.String()
}

var pdfEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`, "\n", `\n`)

func escapePDF(s string) string {
	return pdfEscaper.Replace(s)
}
