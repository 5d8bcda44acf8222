// Package invoicepdf lays out a computed bill as a single A4 tax invoice.
//
// The page is a stack of sections (header, invoice-type strip, customer and
// invoice details, item table, totals, footer, caption). A running cursor
// carries the bottom of each section to the next, so content that wraps in the
// details or totals boxes pushes everything beneath it down by the same amount.
package invoicepdf

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingIdentity = errors.New("invoicepdf: bill has no invoice number or id")
	ErrQRCode          = errors.New("invoicepdf: verification qr code failed")
	ErrTableCapacity   = errors.New("invoicepdf: items exceed table capacity")
	ErrPageOverflow    = errors.New("invoicepdf: content does not fit on the page")
)

// Letterhead is the store block printed at the top and in the signature column.
type Letterhead struct {
	Jurisdiction string
	Name         string
	Address      string
	TaxLine      string
	Contact      string
	Signatory    string
}

// Options configures a Composer. Zero values fall back to defaults.
type Options struct {
	Letterhead    Letterhead
	Declaration   []string
	Caption       string
	VerifyBaseURL string
	CGSTRate      decimal.Decimal
	SGSTRate      decimal.Decimal
	Geometry      *Geometry
	Encoder       QREncoder
}

// Document is one rendered invoice.
type Document struct {
	FileName string
	Content  []byte
	Layout   Layout
}

// Composer renders bills. It keeps no per-render state, so one Composer may be
// shared by concurrent callers.
type Composer struct {
	opts Options
	geo  Geometry
	qr   qrEmbedder
}

// NewComposer creates a composer with the given options.
func NewComposer(opts Options) *Composer {
	geo := DefaultGeometry()
	if opts.Geometry != nil {
		geo = *opts.Geometry
	}
	if opts.Encoder == nil {
		opts.Encoder = PNGEncoder{}
	}
	half := invoice.DefaultGSTRate.Div(decimal.NewFromInt(2))
	if !opts.CGSTRate.IsPositive() {
		opts.CGSTRate = half
	}
	if !opts.SGSTRate.IsPositive() {
		opts.SGSTRate = half
	}
	if opts.Letterhead.Signatory == "" && opts.Letterhead.Name != "" {
		opts.Letterhead.Signatory = "for " + opts.Letterhead.Name
	}
	return &Composer{opts: opts, geo: geo, qr: qrEmbedder{encoder: opts.Encoder}}
}

// Geometry returns the page measurements in use.
func (c *Composer) Geometry() Geometry { return c.geo }

// Letterhead returns the store block printed on every invoice.
func (c *Composer) Letterhead() Letterhead { return c.opts.Letterhead }

// VerifyBaseURL returns the prefix the verification QR points at.
func (c *Composer) VerifyBaseURL() string { return c.opts.VerifyBaseURL }

// Compose renders bill. The bill's totals must already be computed. Either a
// complete document or an error is returned, never a partial artifact.
func (c *Composer) Compose(bill *invoice.Bill) (*Document, error) {
	if bill == nil || strings.TrimSpace(bill.InvoiceNo) == "" || strings.TrimSpace(bill.ID) == "" {
		return nil, ErrMissingIdentity
	}

	// The QR image is encoded alongside the page drawing and awaited just
	// before it is placed in the footer.
	var (
		qrPNG []byte
		qrJob errgroup.Group
	)
	qrJob.Go(func() error {
		var err error
		qrPNG, err = c.qr.encode(VerificationURL(c.opts.VerifyBaseURL, bill.ID))
		return err
	})

	p := c.newPage(bill)
	layout, div1, div2, err := c.lay(p, bill)
	if err != nil {
		_ = qrJob.Wait()
		return nil, err
	}

	if err := qrJob.Wait(); err != nil {
		return nil, err
	}
	layout.QRCode, err = c.qr.place(p.pdf, qrPNG, div1, div2, layout.Footer.Y, layout.Footer.H, c.geo.QRSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoicepdf: write %s: %w", bill.InvoiceNo, err)
	}

	return &Document{
		FileName: FileName(bill.InvoiceNo),
		Content:  buf.Bytes(),
		Layout:   layout,
	}, nil
}

// Fits lays bill out on a scratch page without encoding the QR code or
// producing output. It returns ErrTableCapacity or ErrPageOverflow when the
// bill could not be composed, so callers can reject it before it is stored.
// The bill's totals must already be computed; identity fields are not needed.
func (c *Composer) Fits(bill *invoice.Bill) error {
	if bill == nil {
		return ErrMissingIdentity
	}
	_, _, _, err := c.lay(c.newPage(bill), bill)
	return err
}

// lay draws every section except the QR image and returns the layout and the
// x of the two footer dividers that bound the QR column.
func (c *Composer) lay(p *page, bill *invoice.Bill) (Layout, float64, float64, error) {
	layout := Layout{}

	if bill.IsCancelled() {
		drawWatermark(p.pdf, c.geo)
		layout.Watermark = true
	}

	layout.Header = p.header(c.opts.Letterhead)
	layout.Strip = p.strip()
	layout.Details, layout.AddressLines = p.details(bill)

	// Growth of the details box moves the table's lower bound and everything
	// after it down by the same amount.
	grow := layout.Details.H - c.geo.DetailBaseHeight
	tableBottom := c.geo.TableBottom + grow
	layout.Table = p.cur.take(c.geo, tableBottom-p.cur.y)
	columns, rows, err := tableRenderer{p: p}.render(bill.Items, layout.Table.Y, layout.Table.Bottom())
	if err != nil {
		return layout, 0, 0, err
	}
	layout.Columns, layout.Rows = columns, rows

	layout.Totals, layout.WordsLines = p.totals(bill, c.opts.CGSTRate, c.opts.SGSTRate)

	footer, div1, div2, err := p.footer(c.opts.Letterhead, c.opts.Declaration)
	if err != nil {
		return layout, 0, 0, err
	}
	layout.Footer = footer

	layout.Caption = p.caption(c.opts.Caption)
	if layout.Caption.Bottom() > c.geo.PageHeight {
		return layout, 0, 0, fmt.Errorf("%w: caption ends at %.1fmm", ErrPageOverflow, layout.Caption.Bottom())
	}
	return layout, div1, div2, nil
}

func (c *Composer) newPage(bill *invoice.Bill) *page {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: c.geo.PageWidth, Ht: c.geo.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	// identical bills must give identical bytes
	stamp := bill.InvoiceDate
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)

	pdf.SetTitle("Tax Invoice "+bill.InvoiceNo, true)
	if c.opts.Letterhead.Name != "" {
		pdf.SetCreator(c.opts.Letterhead.Name, true)
	}
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	return &page{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		g:   c.geo,
	}
}

// page is the drawing context of a single composition.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	g   Geometry
	cur cursor
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) textRight(right, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(right-p.pdf.GetStringWidth(s), y, s)
}

func (p *page) textCenter(cx, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(cx-p.pdf.GetStringWidth(s)/2, y, s)
}

// cellText draws s in the cell [x, x+w] honouring the column alignment.
func (p *page) cellText(x, w, baseline float64, s string, align byte) {
	pad := p.g.TablePadding
	switch align {
	case alignCenter:
		p.textCenter(x+w/2, baseline, s)
	case alignRight:
		p.textRight(x+w-pad, baseline, s)
	default:
		p.text(x+pad, baseline, s)
	}
}

// wrap splits s to lines no wider than w in the current font. It always
// returns at least one line.
func (p *page) wrap(s string, w float64) []string {
	lines := p.pdf.SplitText(latin1(s), w)
	out := lines[:0]
	for _, l := range lines {
		out = append(out, strings.TrimRight(l, " "))
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// latin1 replaces runes the core fonts cannot measure.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}

func (p *page) header(lh Letterhead) Rect {
	cx := p.g.PageWidth / 2
	r := p.cur.take(p.g, p.g.HeaderHeight)

	p.pdf.SetFont("Helvetica", "", 8)
	p.textCenter(cx, r.Y+7, lh.Jurisdiction)

	p.pdf.SetFont("Times", "B", 26)
	p.textCenter(cx, r.Y+18, lh.Name)

	p.pdf.SetFont("Helvetica", "", 10)
	p.textCenter(cx, r.Y+24, lh.Address)
	p.textCenter(cx, r.Y+29, lh.TaxLine)
	p.textCenter(cx, r.Y+34, lh.Contact)
	return r
}

func (p *page) strip() Rect {
	r := p.cur.take(p.g, p.g.StripHeight)
	p.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	p.pdf.SetFont("Helvetica", "B", 12)
	p.textCenter(p.g.PageWidth/2, r.Y+5, "Tax Invoice")
	return r
}

func (p *page) details(bill *invoice.Bill) (Rect, int) {
	g := p.g
	divider := g.PageWidth/2 + g.DetailSplit
	labelX := g.Margin + 2
	valX := g.Margin + 27
	const sep = ":  "

	p.pdf.SetFont("Helvetica", "", 9)
	sepW := p.pdf.GetStringWidth(sep)
	address := p.wrap(bill.Customer.Address, divider-valX-sepW-2)

	r := p.cur.take(g, g.DetailBaseHeight+float64(len(address)-1)*g.DetailLineHeight)
	p.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	p.pdf.Line(divider, r.Y, divider, r.Bottom())

	p.pdf.SetFont("Helvetica", "B", 9)
	p.text(labelX, r.Y+5, "CUSTOMER DETAILS:")

	p.pdf.SetFont("Helvetica", "", 9)
	y := r.Y + 10
	row := func(x, vx float64, label, value string) {
		p.text(x, y, label)
		p.text(vx, y, sep+value)
		y += g.DetailLineHeight
	}
	row(labelX, valX, "NAME", bill.Customer.Name)
	row(labelX, valX, "PHONE NO", bill.Customer.Phone)
	p.text(labelX, y, "ADDRESS")
	p.text(valX, y, sep+address[0])
	for _, line := range address[1:] {
		y += g.DetailLineHeight
		p.text(valX+sepW, y, line)
	}
	y += g.DetailLineHeight
	row(labelX, valX, "GSTIN", orPlaceholder(bill.Customer.GSTIN))

	rightX := divider + 2
	rightValX := rightX + 28
	y = r.Y + 10
	row(rightX, rightValX, "INVOICE DATE", formatDate(bill.InvoiceDate))
	row(rightX, rightValX, "INVOICE NO", bill.InvoiceNo)
	row(rightX, rightValX, "ORDER DATE", formatOptionalDate(bill.OrderDate))

	return r, len(address)
}

func (p *page) totals(bill *invoice.Bill, cgstRate, sgstRate decimal.Decimal) (Rect, int) {
	g := p.g
	top := p.cur.y
	wordsX := g.Margin + 30

	p.pdf.SetFont("Helvetica", "I", 9)
	words := p.wrap(bill.AmountInWords, g.TotalsSplit-wordsX-2)

	lastWords := top + 6 + float64(len(words)-1)*g.WordsLineHeight
	paymentY := math.Max(top+22, lastWords+g.PaymentGap)
	r := p.cur.take(g, math.Max(g.TotalsBaseHeight, paymentY+6-top))

	p.pdf.Line(g.Margin, r.Y, g.Margin, r.Bottom())
	p.pdf.Line(g.TotalsSplit, r.Y, g.TotalsSplit, r.Bottom())
	p.pdf.Line(g.Right(), r.Y, g.Right(), r.Bottom())

	p.pdf.SetFont("Helvetica", "", 9)
	p.text(g.Margin+2, r.Y+6, "Amount in words:")
	p.pdf.SetFont("Helvetica", "I", 9)
	for i, line := range words {
		p.text(wordsX, r.Y+6+float64(i)*g.WordsLineHeight, line)
	}
	p.pdf.SetFont("Helvetica", "", 9)
	p.text(g.Margin+2, paymentY, "Mode of payment:")
	p.text(wordsX, paymentY, orPlaceholder(bill.PaymentMode))

	labelX := g.TotalsSplit + 2
	valueX := g.Right() - 2
	rows := []struct{ label, value string }{
		{"TAXABLE VALUE", bill.TaxableValue.StringFixed(2)},
		{"CGST " + percentLabel(cgstRate), bill.CGSTAmount.StringFixed(2)},
		{"SGST " + percentLabel(sgstRate), bill.SGSTAmount.StringFixed(2)},
	}
	for i, row := range rows {
		y := r.Y + float64(i)*g.TotalsRowHeight + 5
		p.text(labelX, y, row.label)
		p.textRight(valueX, y, row.value)
	}

	grandTop := r.Bottom() - g.TotalsRowHeight
	p.pdf.Line(g.TotalsSplit, grandTop, g.Right(), grandTop)
	p.pdf.Line(g.Margin, r.Bottom(), g.Right(), r.Bottom())

	p.pdf.SetFont("Helvetica", "B", 9)
	p.text(labelX, grandTop+5, "TOTAL")
	p.textRight(valueX, grandTop+5, formatRupees(bill.GrandTotal))

	return r, len(words)
}

// footer draws the declaration and signature columns and returns the x of the
// two dividers bounding the QR column.
func (p *page) footer(lh Letterhead, declaration []string) (Rect, float64, float64, error) {
	g := p.g
	r := p.cur.take(g, g.FooterHeight)
	div1 := g.Margin + g.FooterLeftOffset
	div2 := g.Right() - g.FooterRightOffset

	p.pdf.Line(g.Margin, r.Bottom(), g.Right(), r.Bottom())
	p.pdf.Line(g.Margin, r.Y, g.Margin, r.Bottom())
	p.pdf.Line(g.Right(), r.Y, g.Right(), r.Bottom())
	p.pdf.Line(div1, r.Y, div1, r.Bottom())
	p.pdf.Line(div2, r.Y, div2, r.Bottom())

	p.pdf.SetFont("Helvetica", "B", 8)
	p.text(g.Margin+2, r.Y+4, "Declaration:")

	p.pdf.SetFont("Helvetica", "", 7)
	const lineHeight = 4
	bulletX := g.Margin + 2
	textX := g.Margin + 4
	y := r.Y + 9
	for _, para := range declaration {
		for i, line := range p.wrap(para, div1-textX-2) {
			if y > r.Bottom()-1 {
				return Rect{}, 0, 0, fmt.Errorf("%w: declaration does not fit the footer", ErrPageOverflow)
			}
			if i == 0 {
				p.text(bulletX, y, "•")
			}
			p.text(textX, y, line)
			y += lineHeight
		}
		y++
	}

	p.pdf.SetFont("Helvetica", "B", 9)
	p.textRight(g.Right()-2, r.Y+5, lh.Signatory)
	p.pdf.SetFont("Helvetica", "", 8)
	p.textRight(g.Right()-2, r.Bottom()-2, "Authorised Signatory")

	return r, div1, div2, nil
}

func (p *page) caption(s string) Rect {
	r := p.cur.take(p.g, p.g.CaptionHeight)
	p.pdf.SetFont("Helvetica", "", 7)
	p.textCenter(p.g.PageWidth/2, r.Y+5, s)
	return r
}
