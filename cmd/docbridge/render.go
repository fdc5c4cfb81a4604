package main

import (
	"github.com/wippyai/docbridge/foreign"
	"github.com/wippyai/docbridge/itext/barcode"
	"github.com/wippyai/docbridge/itext/iodata"
	"github.com/wippyai/docbridge/itext/kernel"
	"github.com/wippyai/docbridge/itext/layout"
	"github.com/wippyai/docbridge/jdk"
)

type lineItem struct {
	name, price string
}

type invoice struct {
	title  string
	page   kernel.PageSizePreset
	lines  []lineItem
	ean    string
	footer string
}

type presetInfo struct {
	preset        kernel.PageSizePreset
	width, height float32
}

// render builds the invoice in memory and returns the closed PDF.
func render(env *foreign.Env, inv invoice) ([]byte, error) {
	out, err := jdk.NewByteArrayOutputStream(env)
	if err != nil {
		return nil, err
	}
	w, err := kernel.NewPdfWriter(env, out)
	if err != nil {
		return nil, err
	}
	pdf, err := kernel.NewPdfDocument(env, w)
	if err != nil {
		return nil, err
	}
	size, err := inv.page.Get(env)
	if err != nil {
		return nil, err
	}
	doc, err := layout.NewDocumentWithPageSize(env, pdf, size, false)
	if err != nil {
		return nil, err
	}
	if _, err := doc.SetMargins(env, 36, 36, 36, 36); err != nil {
		return nil, err
	}

	if err := addBody(env, doc, pdf, inv); err != nil {
		_ = doc.Close(env)
		return nil, err
	}
	if err := doc.Close(env); err != nil {
		return nil, err
	}
	return out.ToByteArray(env)
}

func addBody(env *foreign.Env, doc *layout.Document, pdf *kernel.PdfDocument, inv invoice) error {
	bold, err := kernel.PdfFontFactory{}.CreateStandardFont(env, iodata.HelveticaBold)
	if err != nil {
		return err
	}
	accent, err := kernel.NewRGB(env, 0.49, 0.34, 0.96)
	if err != nil {
		return err
	}

	heading, err := layout.NewParagraphText(env, inv.title)
	if err != nil {
		return err
	}
	if _, err := layout.Style(env, heading).Font(bold).FontSize(20).FontColor(accent).Done(); err != nil {
		return err
	}
	if _, err := doc.Add(env, heading); err != nil {
		return err
	}

	table, err := itemTable(env, bold, inv.lines)
	if err != nil {
		return err
	}
	if _, err := doc.Add(env, table); err != nil {
		return err
	}

	if inv.ean != "" {
		img, err := eanImage(env, pdf, inv.ean)
		if err != nil {
			return err
		}
		if _, err := doc.AddImage(env, img); err != nil {
			return err
		}
	}

	rule, err := kernel.NewDashedLine(env, 0.5)
	if err != nil {
		return err
	}
	sep, err := layout.NewLineSeparator(env, rule)
	if err != nil {
		return err
	}
	if _, err := layout.Size(env, sep).MarginTop(12).MarginBottom(6).Done(); err != nil {
		return err
	}
	if _, err := doc.Add(env, sep); err != nil {
		return err
	}

	footer, err := layout.NewParagraphText(env, inv.footer)
	if err != nil {
		return err
	}
	gray, err := kernel.ColorFromConstant(env, kernel.Gray)
	if err != nil {
		return err
	}
	center := layout.TextAlignmentCenter
	if _, err := layout.ApplyTheme(env, footer, layout.Theme{FontColor: gray, FontSize: 8, Italic: true, Align: &center}); err != nil {
		return err
	}
	_, err = doc.Add(env, footer)
	return err
}

func itemTable(env *foreign.Env, bold *kernel.PdfFont, lines []lineItem) (*layout.Table, error) {
	table, err := layout.NewTable(env, []float32{3, 1})
	if err != nil {
		return nil, err
	}
	if _, err := table.UseAllAvailableWidth(env); err != nil {
		return nil, err
	}
	header := layout.Theme{Font: bold, Border: layout.Solid{Width: 1, Color: kernel.Black}}
	for _, h := range []string{"Item", "Price"} {
		cell, err := textCell(env, h, layout.TextAlignmentLeft)
		if err != nil {
			return nil, err
		}
		if _, err := layout.ApplyTheme(env, cell, header); err != nil {
			return nil, err
		}
		if _, err := table.AddHeaderCell(env, cell); err != nil {
			return nil, err
		}
	}
	for _, l := range lines {
		name, err := textCell(env, l.name, layout.TextAlignmentLeft)
		if err != nil {
			return nil, err
		}
		price, err := textCell(env, l.price, layout.TextAlignmentRight)
		if err != nil {
			return nil, err
		}
		if _, err := table.AddCell(env, name); err != nil {
			return nil, err
		}
		if _, err := table.AddCell(env, price); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func textCell(env *foreign.Env, text string, align layout.TextAlignment) (*layout.Cell, error) {
	p, err := layout.NewParagraphText(env, text)
	if err != nil {
		return nil, err
	}
	cell, err := layout.NewCell(env)
	if err != nil {
		return nil, err
	}
	if _, err := cell.Add(env, p); err != nil {
		return nil, err
	}
	return cell.SetTextAlignment(env, align)
}

func eanImage(env *foreign.Env, pdf *kernel.PdfDocument, code string) (*layout.Image, error) {
	bc, err := barcode.New(env, pdf)
	if err != nil {
		return nil, err
	}
	if _, err := bc.SetCodeType(env, barcode.Ean13); err != nil {
		return nil, err
	}
	if _, err := bc.SetCode(env, code); err != nil {
		return nil, err
	}
	form, err := bc.CreateFormXObject(env, nil, nil, pdf)
	if err != nil {
		return nil, err
	}
	img, err := layout.NewImageFromXObject(env, form)
	if err != nil {
		return nil, err
	}
	return layout.Style(env, img).HorizontalAlignment(layout.HorizontalAlignmentCenter).Done()
}

// listPresets resolves every page size preset through env.
func listPresets(env *foreign.Env) ([]presetInfo, error) {
	var out []presetInfo
	for _, p := range kernel.PageSizePresets() {
		size, err := p.Get(env)
		if err != nil {
			return nil, err
		}
		w, err := size.Width(env)
		if err != nil {
			return nil, err
		}
		h, err := size.Height(env)
		if err != nil {
			return nil, err
		}
		out = append(out, presetInfo{preset: p, width: w, height: h})
	}
	return out, nil
}
