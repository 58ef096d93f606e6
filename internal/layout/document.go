package layout

// Size is a page size in millimetres.
type Size struct {
	W, H float64
}

// A4Landscape is the page size used by the financial report.
var A4Landscape = Size{W: 297, H: 210}

// Margins are page margins in millimetres.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Page is an ordered list of ops.
type Page struct {
	Number  int
	Section string
	Ops     []Op
}

// Add appends ops to the page.
func (p *Page) Add(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// FillRect appends a filled rectangle.
func (p *Page) FillRect(x, y, w, h float64, fill Color) {
	p.Add(Rect{X: x, Y: y, W: w, H: h, Fill: &fill})
}

// StrokeRect appends an outlined rectangle.
func (p *Page) StrokeRect(x, y, w, h float64, stroke Color, width float64) {
	p.Add(Rect{X: x, Y: y, W: w, H: h, Stroke: &stroke, LineWidth: width})
}

// Label appends a text op.
func (p *Page) Label(x, y, w, h float64, content string, size float64, bold bool, color Color, align Align) {
	p.Add(Text{X: x, Y: y, W: w, H: h, Content: content, Size: size, Bold: bold, Color: color, Align: align})
}

// Texts returns the contents of every text op in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// PageDecorator draws the recurring chrome (header band, logo) of a freshly
// added page and returns the Y where content may start.
type PageDecorator func(doc *Document, page *Page) float64

// Document is a sequence of pages plus a vertical cursor on the current page.
type Document struct {
	Size     Size
	Margins  Margins
	Pages    []*Page
	Metadata map[string]string

	cursor    float64
	decorator PageDecorator
}

// NewDocument creates an empty document.
func NewDocument(size Size, margins Margins) *Document {
	return &Document{Size: size, Margins: margins, Metadata: map[string]string{}}
}

// SetDecorator installs the decorator used by subsequent AddPage calls.
// A nil decorator leaves new pages blank.
func (d *Document) SetDecorator(fn PageDecorator) {
	d.decorator = fn
}

// AddPage starts a new page for section and runs the current decorator.
func (d *Document) AddPage(section string) *Page {
	page := &Page{Number: len(d.Pages) + 1, Section: section}
	d.Pages = append(d.Pages, page)
	d.cursor = d.Margins.Top
	if d.decorator != nil {
		if y := d.decorator(d, page); y > d.cursor {
			d.cursor = y
		}
	}
	return page
}

// Current returns the page being drawn, or nil before the first AddPage.
func (d *Document) Current() *Page {
	if len(d.Pages) == 0 {
		return nil
	}
	return d.Pages[len(d.Pages)-1]
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Y returns the cursor position on the current page.
func (d *Document) Y() float64 { return d.cursor }

// SetY moves the cursor.
func (d *Document) SetY(y float64) { d.cursor = y }

// Advance moves the cursor down by dy.
func (d *Document) Advance(dy float64) { d.cursor += dy }

// Bottom is the lowest Y content may reach.
func (d *Document) Bottom() float64 { return d.Size.H - d.Margins.Bottom }

// Remaining is the vertical space left on the current page.
func (d *Document) Remaining() float64 { return d.Bottom() - d.cursor }

// ContentWidth is the page width minus horizontal margins.
func (d *Document) ContentWidth() float64 { return d.Size.W - d.Margins.Left - d.Margins.Right }

// Ensure starts a continuation page of the current section when less than h
// millimetres remain. It reports whether a break happened.
func (d *Document) Ensure(h float64) bool {
	if d.Current() != nil && d.Remaining() >= h {
		return false
	}
	section := ""
	if cur := d.Current(); cur != nil {
		section = cur.Section
	}
	d.AddPage(section)
	return true
}
