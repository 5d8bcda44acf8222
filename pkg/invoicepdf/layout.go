package invoicepdf

// Rect is an axis aligned box in page units (mm), origin top-left.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Overlaps reports whether the vertical spans of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Layout is the geometry produced by one composition. Sections are listed top
// to bottom; each starts where the previous one ends.
type Layout struct {
	Header  Rect `json:"header"`
	Strip   Rect `json:"strip"`
	Details Rect `json:"details"`
	Table   Rect `json:"table"`
	Totals  Rect `json:"totals"`
	Footer  Rect `json:"footer"`
	Caption Rect `json:"caption"`

	QRCode    Rect      `json:"qr_code"`
	Columns   []float64 `json:"columns"`
	Rows      int       `json:"rows"`
	Watermark bool      `json:"watermark"`

	AddressLines int `json:"address_lines"`
	WordsLines   int `json:"words_lines"`
}

// Sections returns the stacked sections in drawing order.
func (l Layout) Sections() []Rect {
	return []Rect{l.Header, l.Strip, l.Details, l.Table, l.Totals, l.Footer, l.Caption}
}

// Geometry holds the fixed measurements of the page. Heights marked "base" grow
// with wrapped content; everything else is fixed.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	HeaderHeight float64
	StripHeight  float64

	DetailBaseHeight float64
	DetailLineHeight float64
	DetailSplit      float64 // divider x offset from the page centre

	// TableBottom is the fixed lower bound of the item grid before any detail
	// box growth is applied.
	TableBottom     float64
	TableHeadHeight float64
	TableLineHeight float64
	TablePadding    float64
	ColumnRatios    []float64

	TotalsRowHeight  float64
	TotalsBaseHeight float64
	TotalsSplit      float64 // x of the words/numbers divider
	WordsLineHeight  float64
	PaymentGap       float64

	FooterHeight      float64
	FooterLeftOffset  float64 // declaration | QR divider, from the left margin
	FooterRightOffset float64 // QR | signature divider, from the right margin
	QRSize            float64

	CaptionHeight float64
}

// DefaultGeometry is the A4 portrait layout in millimetres.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     14,

		HeaderHeight: 37,
		StripHeight:  7,

		DetailBaseHeight: 28,
		DetailLineHeight: 5,
		DetailSplit:      10,

		TableBottom:     176,
		TableHeadHeight: 8,
		TableLineHeight: 4,
		TablePadding:    2,
		ColumnRatios:    []float64{15, 60, 15, 22, 22, 20, 28},

		TotalsRowHeight:  7,
		TotalsBaseHeight: 28,
		TotalsSplit:      135,
		WordsLineHeight:  4.5,
		PaymentGap:       6,

		FooterHeight:      35,
		FooterLeftOffset:  85,
		FooterRightOffset: 51,
		QRSize:            25,

		CaptionHeight: 8,
	}
}

// ContentWidth is the width between the left and right margins.
func (g Geometry) ContentWidth() float64 { return g.PageWidth - 2*g.Margin }

// Right is the x of the right margin.
func (g Geometry) Right() float64 { return g.PageWidth - g.Margin }

// ColumnWidths scales ColumnRatios to the content width.
func (g Geometry) ColumnWidths() []float64 {
	var sum float64
	for _, r := range g.ColumnRatios {
		sum += r
	}
	widths := make([]float64, len(g.ColumnRatios))
	if sum <= 0 {
		return widths
	}
	cw := g.ContentWidth()
	for i, r := range g.ColumnRatios {
		widths[i] = r / sum * cw
	}
	return widths
}

// cursor is the running vertical position shared by the section renderers.
type cursor struct {
	y float64
}

// take reserves h below the cursor and returns the section's rectangle.
func (c *cursor) take(g Geometry, h float64) Rect {
	r := Rect{X: g.Margin, Y: c.y, W: g.ContentWidth(), H: h}
	c.y += h
	return r
}
