// Package pdf executes layout ops against go-pdf/fpdf.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/sr-consultoria/farmreport/internal/layout"
)

// ErrEmptyDocument is returned when asked to render a document without pages.
var ErrEmptyDocument = errors.New("pdf: document has no pages")

const (
	fontFamily = "Helvetica"
	arcStep    = 4.0
	creator    = "farmreport"
)

// Renderer turns a layout.Document into PDF bytes.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer constructs a Renderer. A nil logger falls back to slog.Default.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render returns the PDF encoding of doc.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the PDF encoding of doc into w.
func (r *Renderer) Write(w io.Writer, doc *layout.Document) error {
	if doc == nil || doc.PageCount() == 0 {
		return ErrEmptyDocument
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: doc.Size.W, Ht: doc.Size.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCreator(creator, true)
	if v := doc.Metadata["title"]; v != "" {
		pdf.SetTitle(v, true)
	}
	if v := doc.Metadata["author"]; v != "" {
		pdf.SetAuthor(v, true)
	}
	if v := doc.Metadata["subject"]; v != "" {
		pdf.SetSubject(v, true)
	}

	c := &canvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: map[string]bool{},
		logger: r.logger,
	}
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			c.draw(op)
			if pdf.Err() {
				return fmt.Errorf("pdf: page %d: %w", page.Number, pdf.Error())
			}
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}

type canvas struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images map[string]bool
	logger *slog.Logger
}

func (c *canvas) draw(op layout.Op) {
	switch o := op.(type) {
	case layout.Rect:
		c.rect(o)
	case layout.Line:
		c.line(o)
	case layout.Text:
		c.text(o)
	case layout.Polyline:
		c.polyline(o)
	case layout.Polygon:
		c.polygon(o.Points, o.Fill, o.Alpha)
	case layout.Circle:
		c.fill(o.Fill)
		c.pdf.Circle(o.X, o.Y, o.R, "F")
	case layout.Wedge:
		c.polygon(o.Points(arcStep), o.Fill, 1)
	case layout.Image:
		c.image(o)
	}
}

func (c *canvas) rect(o layout.Rect) {
	if o.W <= 0 || o.H <= 0 {
		return
	}
	style := ""
	if o.Fill != nil {
		c.fill(*o.Fill)
		style += "F"
	}
	if o.Stroke != nil {
		c.stroke(*o.Stroke, o.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	if o.Radius > 0 {
		c.pdf.RoundedRect(o.X, o.Y, o.W, o.H, o.Radius, "1234", style)
		return
	}
	c.pdf.Rect(o.X, o.Y, o.W, o.H, style)
}

func (c *canvas) line(o layout.Line) {
	c.stroke(o.Color, o.Width)
	if len(o.Dash) > 0 {
		c.pdf.SetDashPattern(o.Dash, 0)
		defer c.pdf.SetDashPattern([]float64{}, 0)
	}
	c.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
}

func (c *canvas) polyline(o layout.Polyline) {
	if len(o.Points) < 2 {
		return
	}
	c.stroke(o.Color, o.Width)
	c.pdf.SetLineJoinStyle("round")
	c.pdf.SetLineCapStyle("round")
	for i := 1; i < len(o.Points); i++ {
		a, b := o.Points[i-1], o.Points[i]
		c.pdf.Line(a.X, a.Y, b.X, b.Y)
	}
	c.pdf.SetLineCapStyle("butt")
	c.pdf.SetLineJoinStyle("miter")
}

func (c *canvas) polygon(points []layout.Point, fill layout.Color, alpha float64) {
	if len(points) < 3 {
		return
	}
	pts := make([]fpdf.PointType, len(points))
	for i, p := range points {
		pts[i] = fpdf.PointType{X: p.X, Y: p.Y}
	}
	translucent := alpha > 0 && alpha < 1
	if translucent {
		c.pdf.SetAlpha(alpha, "Normal")
	}
	c.fill(fill)
	c.pdf.Polygon(pts, "F")
	if translucent {
		c.pdf.SetAlpha(1, "Normal")
	}
}

func (c *canvas) text(o layout.Text) {
	if o.Content == "" {
		return
	}
	style := ""
	if o.Bold {
		style = "B"
	}
	size := o.Size
	if size <= 0 {
		size = 9
	}
	c.pdf.SetFont(fontFamily, style, size)
	c.pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
	content := c.fit(c.tr(o.Content), o.W)
	align := string(o.Align)
	if align == "" {
		align = string(layout.AlignLeft)
	}
	c.pdf.SetXY(o.X, o.Y)
	c.pdf.CellFormat(o.W, o.H, content, "", 0, align+"M", false, 0, "")
}

// fit trims already-translated text to the measured width. The layout
// estimate is close but the real font metrics have the final word.
func (c *canvas) fit(s string, width float64) string {
	if width <= 0 || c.pdf.GetStringWidth(s) <= width {
		return s
	}
	ellipsis := c.tr("…")
	raw := []byte(s)
	for len(raw) > 1 {
		raw = raw[:len(raw)-1]
		if candidate := string(raw) + ellipsis; c.pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return string(raw)
}

func (c *canvas) image(o layout.Image) {
	if len(o.Data) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: o.Format, ReadDpi: false}
	if _, ok := c.images[o.Name]; !ok {
		c.pdf.RegisterImageOptionsReader(o.Name, opts, bytes.NewReader(o.Data))
		if c.pdf.Err() {
			c.logger.Warn("pdf image skipped", slog.String("image", o.Name), slog.Any("error", c.pdf.Error()))
			c.pdf.ClearError()
			c.images[o.Name] = false
			return
		}
		c.images[o.Name] = true
	}
	if !c.images[o.Name] {
		return
	}
	c.pdf.ImageOptions(o.Name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
}

func (c *canvas) fill(col layout.Color) {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
}

func (c *canvas) stroke(col layout.Color, width float64) {
	if width <= 0 {
		width = 0.2
	}
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetLineWidth(width)
}
