package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sangkips/jewel-billing/internal/config"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billJSON = `{
	"_id": "0b6f8c1e-7d1a-4b7e-9f55-3c2a1d4e5f60",
	"invoiceNo": "252601",
	"invoiceDate": "2025-10-05T00:00:00Z",
	"customer": {"name": "Asha Patil", "address": "Navghar Road"},
	"items": [{"particulars": "Gold Ring", "purity": "22K", "netWeight": "4.5", "rate": "6000", "amount": "1000"}],
	"paymentMode": "Cash",
	"grandTotal": 999
}`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Invoice.GSTRate = invoice.DefaultGSTRate
	cfg.Invoice.VerifyBaseURL = "https://example.test/verify/"
	cfg.Store.Name = "MARUTI JEWELLERS"
	return cfg
}

func TestRun_WritesInvoice(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bill.json")
	require.NoError(t, os.WriteFile(in, []byte(billJSON), 0o644))

	var out bytes.Buffer
	err := run([]string{"--in", in, "--out", filepath.Join(dir, "pdf")}, testConfig(), &out)
	require.NoError(t, err)

	path := filepath.Join(dir, "pdf", "Invoice_252601.pdf")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Contains(t, out.String(), "252601\t1030\t")
}

func TestRun_KeepTotals(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bill.json")
	require.NoError(t, os.WriteFile(in, []byte(billJSON), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-i", in, "-o", dir, "--keep-totals"}, testConfig(), &out))
	assert.Contains(t, out.String(), "252601\t999\t")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, testConfig(), &out))
	assert.Error(t, run([]string{"--in", "missing.json"}, testConfig(), &out))
	assert.Error(t, run([]string{"--in", "x", "--gst-rate", "abc"}, testConfig(), &out))

	dir := t.TempDir()
	in := filepath.Join(dir, "bill.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"items": []}`), 0o644))
	assert.Error(t, run([]string{"--in", in, "--out", dir}, testConfig(), &out))
}

func TestRun_NumericItemFields(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bill.json")
	body := `{
		"_id": "0b6f8c1e-7d1a-4b7e-9f55-3c2a1d4e5f60",
		"invoiceNo": "252602",
		"invoiceDate": "2025-10-05T00:00:00Z",
		"customer": {"name": "Asha Patil"},
		"items": [{"particulars": "Gold Ring", "netWeight": 4.5, "rate": 6000, "amount": 1000}, {"particulars": "Polish", "amount": false}],
		"paymentMode": "Cash"
	}`
	require.NoError(t, os.WriteFile(in, []byte(body), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--in", in, "--out", dir}, testConfig(), &out))
	assert.Contains(t, out.String(), "252602\t1030\t")
	assert.FileExists(t, filepath.Join(dir, "Invoice_252602.pdf"))
}

func TestRun_RejectsInvoiceNumberOutsideOutDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pdf")
	for _, invoiceNo := range []string{"a/../../../x", `a\..\x`, "../252601"} {
		record := strings.Replace(billJSON, `"invoiceNo": "252601"`, `"invoiceNo": "`+strings.ReplaceAll(invoiceNo, `\`, `\\`)+`"`, 1)
		in := filepath.Join(dir, "bill.json")
		require.NoError(t, os.WriteFile(in, []byte(record), 0o644))

		var stdout bytes.Buffer
		err := run([]string{"--in", in, "--out", out}, testConfig(), &stdout)
		assert.Error(t, err, invoiceNo)
		assert.Empty(t, stdout.String())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "x.pdf", e.Name())
	}
}
