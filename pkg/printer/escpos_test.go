package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_KeyValueFillsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("TOTAL:", "1030")

	line := strings.TrimSuffix(string(doc.Bytes()[2:]), "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "TOTAL:"))
	assert.True(t, strings.HasSuffix(line, "1030"))
}

func TestDocument_ItemLineWrapsLongNames(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(1, "Antique Temple Necklace With Ruby Drops", "45.120g", "250000.00")

	lines := strings.Split(strings.TrimSuffix(string(doc.Bytes()[2:]), "\n"), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "1  "))
	assert.True(t, strings.HasSuffix(lines[0], "250000.00"))
	assert.True(t, strings.HasPrefix(lines[1], "   "))
}

func TestDocument_QRCode(t *testing.T) {
	url := "https://example.test/verify/abc"
	doc := NewDocument(48)
	doc.QRCode(url, 0)

	out := doc.Bytes()
	n := len(url) + 3
	store := append([]byte{GS, '(', 'k', byte(n % 256), byte(n / 256), 49, 80, 48}, url...)
	assert.True(t, bytes.Contains(out, store))
	assert.True(t, bytes.Contains(out, []byte{GS, '(', 'k', 3, 0, 49, 67, 6}))
	assert.True(t, bytes.HasSuffix(out, []byte{GS, '(', 'k', 3, 0, 49, 81, 48}))

	empty := NewDocument(48).QRCode("", 6)
	assert.Equal(t, []byte{ESC, '@'}, empty.Bytes())
}

func TestWrapWords(t *testing.T) {
	assert.Equal(t, []string{"One Thousand", "Thirty Rupees", "Only"}, wrapWords("One Thousand Thirty Rupees Only", 13))
	assert.Equal(t, []string{"abcde", "fgh"}, wrapWords("abcdefgh", 5))
	assert.Equal(t, []string{""}, wrapWords("   ", 10))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	require.NoError(t, err)
	assert.NoError(t, p.Print(context.Background(), []byte("x")))
	assert.False(t, p.IsConnected())

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)
	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)
	_, err = NewPrinterFromConfig("bluetooth", "", "")
	assert.Error(t, err)
}
