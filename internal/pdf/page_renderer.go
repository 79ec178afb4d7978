package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"doabli/internal/models"
)

// Renderer is the interface handlers depend on (handy for mocks in tests).
type Renderer interface {
	RenderPage(w io.Writer, page *models.Page) error
}

// PageRenderer lays a page out as an A4 document: title, date line, one block per paragraph.
type PageRenderer struct {
	FontPath string // TTF with the glyphs you need; empty falls back to Helvetica (latin-1 only)
	fontName string
}

func NewPageRenderer(fontPath string) *PageRenderer {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &PageRenderer{FontPath: fontPath, fontName: name}
}

func (g *PageRenderer) RenderPage(w io.Writer, page *models.Page) error {
	if page == nil {
		return fmt.Errorf("render page: nil page")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(page.Title, true)
	pdf.SetAuthor("Doabli", false)
	pdf.SetCreationDate(page.UpdatedAt)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := g.addFont(pdf)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.MultiCell(0, 9, tr(page.Title), "", "L", false)

	pdf.SetFont(g.fontName, "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, tr(dateLine(page)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 11)
	for _, p := range page.Content.Paragraphs() {
		if p == "" {
			pdf.Ln(4)
			continue
		}
		pdf.MultiCell(0, 6, tr(p), "", "L", false)
		pdf.Ln(2)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render page %d: %w", page.ID, err)
	}
	return pdf.Output(w)
}

func dateLine(page *models.Page) string {
	ts := page.UpdatedAt
	if ts.IsZero() {
		ts = page.CreatedAt
	}
	if ts.IsZero() {
		return ""
	}
	return "Updated " + ts.Format(time.DateOnly)
}

// addFont registers the UTF-8 font if configured and returns the text translator for the chosen font.
func (g *PageRenderer) addFont(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath == "" {
		return pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	return func(s string) string { return s }
}

func (g *PageRenderer) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 4)
}
