package invoicepdf

import (
	"fmt"
	"strconv"

	"github.com/sangkips/jewel-billing/pkg/invoice"
)

var tableHead = []string{"Sr No.", "Particulars", "Purity", "Gross Wt.", "Net Wt.", "Rate", "Amount"}

const (
	alignLeft   = 'L'
	alignCenter = 'C'
	alignRight  = 'R'
)

var tableAlign = []byte{alignCenter, alignLeft, alignCenter, alignCenter, alignCenter, alignRight, alignRight}

// tableRenderer draws the item grid in the band [top, bottom]. The grid lines
// always run to bottom regardless of how many rows are filled.
type tableRenderer struct {
	p *page
}

// render returns the column boundaries and the number of rows drawn. Rows that
// would cross bottom fail with ErrTableCapacity; there is no second page.
func (t tableRenderer) render(items []invoice.LineItem, top, bottom float64) ([]float64, int, error) {
	p, g := t.p, t.p.g
	widths := g.ColumnWidths()
	bounds := make([]float64, len(widths)+1)
	bounds[0] = g.Margin
	for i, w := range widths {
		bounds[i+1] = bounds[i] + w
	}

	if top+g.TableHeadHeight > bottom {
		return nil, 0, fmt.Errorf("%w: no room for the table header", ErrPageOverflow)
	}

	// header row
	p.pdf.SetFillColor(235, 235, 235)
	p.pdf.Rect(g.Margin, top, g.ContentWidth(), g.TableHeadHeight, "FD")
	p.pdf.SetFont("Helvetica", "B", 9)
	for i, label := range tableHead {
		p.cellText(bounds[i], widths[i], top+g.TableHeadHeight/2+1.2, label, alignCenter)
	}

	p.pdf.SetFont("Helvetica", "", 9)
	y := top + g.TableHeadHeight
	for i, item := range items {
		cells := []string{
			strconv.Itoa(i + 1),
			item.Particulars,
			orPlaceholder(item.Purity),
			formatWeight(item.GrossWeight),
			formatWeight(item.NetWeight),
			formatMoney(item.Rate),
			formatMoney(item.Amount),
		}

		wrapped := make([][]string, len(cells))
		lines := 1
		for c, text := range cells {
			wrapped[c] = p.wrap(text, widths[c]-2*g.TablePadding)
			if len(wrapped[c]) > lines {
				lines = len(wrapped[c])
			}
		}

		rowHeight := float64(lines)*g.TableLineHeight + 2*g.TablePadding
		if y+rowHeight > bottom {
			return nil, i, fmt.Errorf("%w: item %d of %d does not fit", ErrTableCapacity, i+1, len(items))
		}

		for c, cellLines := range wrapped {
			for k, line := range cellLines {
				baseline := y + g.TablePadding + g.TableLineHeight - 1 + float64(k)*g.TableLineHeight
				p.cellText(bounds[c], widths[c], baseline, line, tableAlign[c])
			}
		}
		y += rowHeight
	}

	// grid post-pass
	for _, x := range bounds {
		p.pdf.Line(x, top, x, bottom)
	}
	p.pdf.Line(g.Margin, bottom, g.Right(), bottom)

	return bounds, len(items), nil
}
