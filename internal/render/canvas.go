package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"pdfcal/internal/config"
	"pdfcal/internal/layout"
)

// Canvas is the drawing backend. Coordinates are inches from the top left
// corner of the page. Text is drawn left aligned with its baseline at y.
type Canvas interface {
	AddPage()
	SetFont(f layout.Font)
	SetTextColor(c config.Color)
	// StringWidth measures text at the current font, in inches.
	StringWidth(text string) float64
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, text string)
	// Err reports the first backend failure, if any.
	Err() error
}

// PDFCanvas draws on a landscape letter sized fpdf document.
type PDFCanvas struct {
	pdf *fpdf.Fpdf
	enc *encoding.Encoder
}

// NewPDFCanvas creates an empty document with no page margins and automatic
// page breaks disabled; layout decides where everything goes.
func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		SizeStr:        "Letter",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("pdfcal", true)

	return &PDFCanvas{
		pdf: pdf,
		// Core fonts are cp1252 encoded.
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
}

func (c *PDFCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) SetFont(f layout.Font) {
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (c *PDFCanvas) SetTextColor(col config.Color) {
	c.pdf.SetTextColor(col[0], col[1], col[2])
}

func (c *PDFCanvas) StringWidth(text string) float64 {
	return c.pdf.GetStringWidth(c.encode(text))
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *PDFCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, c.encode(text))
}

func (c *PDFCanvas) Err() error {
	return c.pdf.Error()
}

// Output writes the finished document.
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("render: write pdf: %w", err)
	}
	return nil
}

func (c *PDFCanvas) encode(s string) string {
	out, err := c.enc.String(s)
	if err != nil {
		return s
	}
	return out
}
