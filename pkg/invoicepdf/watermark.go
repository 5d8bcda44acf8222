package invoicepdf

import "github.com/go-pdf/fpdf"

const (
	watermarkText    = "CANCELLED"
	watermarkAngle   = 45
	watermarkSize    = 60
	watermarkOpacity = 0.3
)

// drawWatermark writes a rotated translucent CANCELLED across the page centre.
// It must run before any other drawing so the invoice body covers it.
func drawWatermark(pdf *fpdf.Fpdf, g Geometry) {
	cx, cy := g.PageWidth/2, g.PageHeight/2

	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont("Helvetica", "B", watermarkSize)
	pdf.SetAlpha(watermarkOpacity, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(watermarkAngle, cx, cy)
	w := pdf.GetStringWidth(watermarkText)
	pdf.Text(cx-w/2, cy, watermarkText)
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}
