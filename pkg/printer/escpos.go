package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (default 32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal           $100.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints a numbered jewellery line: the name on the left, then the
// net weight and amount right-aligned in fixed columns. Names that do not fit
// continue on following lines.
// Example: "1  Gold Ring 22K      4.560g   25000.00"
func (d *Document) ItemLine(srNo int, name, weight, amount string) *Document {
	tail := fmt.Sprintf(" %9s %10s", weight, amount)
	prefix := fmt.Sprintf("%-3d", srNo)
	room := d.width - len(prefix) - len(tail)
	if room < 4 {
		room = 4
	}
	lines := wrapWords(name, room)
	for i, line := range lines {
		if i == 0 {
			d.buf.WriteString(prefix)
			d.buf.WriteString(line)
			d.buf.WriteString(strings.Repeat(" ", room-len(line)))
			d.buf.WriteString(tail)
		} else {
			d.buf.WriteString(strings.Repeat(" ", len(prefix)))
			d.buf.WriteString(line)
		}
		d.buf.WriteByte(LF)
	}
	return d
}

// Wrapped writes s broken into lines no wider than the paper.
func (d *Document) Wrapped(s string) *Document {
	for _, line := range wrapWords(s, d.width) {
		d.Text(line)
	}
	return d
}

// QRCode prints content as a QR symbol using the GS ( k function 165 set.
// module is the dot size of one cell (1-16); error correction is level M.
func (d *Document) QRCode(content string, module byte) *Document {
	if content == "" {
		return d
	}
	if module < 1 || module > 16 {
		module = 6
	}
	// Select model 2
	d.buf.Write([]byte{GS, '(', 'k', 4, 0, 49, 65, 50, 0})
	// Module size
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 67, module})
	// Error correction M
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 69, 49})

	n := len(content) + 3
	d.buf.Write([]byte{GS, '(', 'k', byte(n % 256), byte(n / 256), 49, 80, 48})
	d.buf.WriteString(content)

	// Print stored symbol
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 49, 81, 48})
	return d
}

// wrapWords breaks s at spaces into lines of at most width bytes. Words longer
// than width are split.
func wrapWords(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	for _, w := range words {
		for len(w) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, w[:width])
			w = w[width:]
		}
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}
