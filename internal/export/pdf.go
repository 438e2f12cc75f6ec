package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"LocalNotes/internal/render"
	"LocalNotes/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// Request is everything the document renderer needs: a title, a copy of
// the scene and the rectangle of world space to crop to.
type Request struct {
	Title string
	Items []state.Item
	Crop  state.Rect
}

// Exporter turns a Request into a document and returns where it was written.
type Exporter interface {
	Export(ctx context.Context, req Request) (string, error)
}

// PDF writes single-page PDF documents sized to the crop rectangle, one
// world unit per point.
type PDF struct {
	Dir string
}

var _ Exporter = (*PDF)(nil)

// Export writes <Dir>/<title>.pdf.
func (p *PDF) Export(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", p.Dir, err)
	}
	path := filepath.Join(p.Dir, fileName(req.Title)+".pdf")
	pdf := build(req)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	log.Printf("[EXPORT] Wrote %d items to %s (crop %.0fx%.0f)", len(req.Items), path, req.Crop.W, req.Crop.H)
	return path, nil
}

// WriteTo renders the document into w.
func (p *PDF) WriteTo(w io.Writer, req Request) error {
	if err := build(req).Output(w); err != nil {
		return fmt.Errorf("export: render: %w", err)
	}
	return nil
}

func build(req Request) *gofpdf.Fpdf {
	crop := req.Crop
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: crop.W, Ht: crop.H},
	})
	pdf.SetTitle(req.Title, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, it := range req.Items {
		switch v := it.(type) {
		case *state.Stroke:
			drawStroke(pdf, v, crop)
		case *state.TextBox:
			drawText(pdf, v, crop, tr)
		}
	}
	return pdf
}

func drawStroke(pdf *gofpdf.Fpdf, s *state.Stroke, crop state.Rect) {
	if len(s.Points) == 0 {
		return
	}
	c := render.ParseColor(s.Color)
	if len(s.Points) == 1 {
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		p := s.Points[0]
		pdf.Circle(p.X-crop.X, p.Y-crop.Y, s.Width/2, "F")
		return
	}
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(s.Width)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.MoveTo(s.Points[0].X-crop.X, s.Points[0].Y-crop.Y)
	for _, p := range s.Points[1:] {
		pdf.LineTo(p.X-crop.X, p.Y-crop.Y)
	}
	pdf.DrawPath("D")
}

func drawText(pdf *gofpdf.Fpdf, t *state.TextBox, crop state.Rect, tr func(string) string) {
	size := render.FontSize(t.Font)
	lineHeight := size * render.LineSpacing
	c := render.ParseColor(t.Color)
	pdf.SetFont("Helvetica", "", size)
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))

	x, y := t.X-crop.X, t.Y-crop.Y
	lines := render.LayoutText(func(s string) float64 { return pdf.GetStringWidth(tr(s)) }, t)
	pdf.ClipRect(x, y, t.W, t.H, false)
	for _, line := range lines {
		pdf.SetXY(x+line.DX, y+line.DY)
		pdf.CellFormat(line.Width, lineHeight, tr(line.Text), "", 0, "LM", false, 0, "")
	}
	pdf.ClipEnd()
}

// fileName keeps letters, digits, dashes and underscores of title.
func fileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '_'
		}
		return -1
	}, strings.TrimSpace(title))
	if name == "" {
		return "untitled"
	}
	return name
}
