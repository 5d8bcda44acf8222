// Command invoicepdf renders a bill record from JSON to an invoice PDF without
// a database or server.
//
//	invoicepdf -in bill.json -out ./invoices
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sangkips/jewel-billing/internal/config"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

type options struct {
	in         string
	out        string
	gstRate    string
	verifyURL  string
	keepTotals bool
}

func main() {
	if err := run(os.Args[1:], config.Load(), os.Stdout); err != nil {
		log.Fatalf("invoicepdf: %v", err)
	}
}

func run(args []string, cfg *config.Config, stdout io.Writer) error {
	var opts options
	fs := pflag.NewFlagSet("invoicepdf", pflag.ContinueOnError)
	fs.StringVarP(&opts.in, "in", "i", "", "bill JSON file (- for stdin)")
	fs.StringVarP(&opts.out, "out", "o", ".", "output directory")
	fs.StringVar(&opts.gstRate, "gst-rate", cfg.Invoice.GSTRate.String(), "total GST rate, split evenly into CGST and SGST")
	fs.StringVar(&opts.verifyURL, "verify-url", cfg.Invoice.VerifyBaseURL, "verification URL prefix for the QR code")
	fs.BoolVar(&opts.keepTotals, "keep-totals", false, "print the stored totals instead of recomputing them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.in == "" {
		return errors.New("-in is required")
	}

	rate, err := decimal.NewFromString(opts.gstRate)
	if err != nil {
		return fmt.Errorf("invalid --gst-rate %q: %w", opts.gstRate, err)
	}

	bill, err := readBill(opts.in)
	if err != nil {
		return err
	}

	calc := invoice.NewTaxCalculator(rate)
	if opts.keepTotals {
		if d := invoice.CheckStoredTotal(calc, bill.Items, bill.GrandTotal); d.Mismatch() {
			log.Printf("Warning: stored total %d differs from recomputed %d", d.Stored, d.Recomputed)
		}
	} else {
		invoice.Recompute(bill, calc)
	}

	composer := invoicepdf.NewComposer(invoicepdf.Options{
		Letterhead: invoicepdf.Letterhead{
			Jurisdiction: cfg.Store.Jurisdiction,
			Name:         cfg.Store.Name,
			Address:      cfg.Store.Address,
			TaxLine:      cfg.Store.TaxLine(),
			Contact:      cfg.Store.ContactLine(),
			Signatory:    cfg.Store.SignatoryLine(),
		},
		Declaration:   cfg.Store.Declaration,
		Caption:       cfg.Store.Caption,
		VerifyBaseURL: opts.verifyURL,
		CGSTRate:      calc.CGSTRate(),
		SGSTRate:      calc.SGSTRate(),
	})

	doc, err := composer.Compose(bill)
	if err != nil {
		return err
	}
	if strings.ContainsAny(doc.FileName, `/\`) || filepath.Base(doc.FileName) != doc.FileName {
		return fmt.Errorf("invoice number %q cannot be used as a file name", bill.InvoiceNo)
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}
	path := filepath.Join(opts.out, doc.FileName)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\t%d\t%s\n", bill.InvoiceNo, bill.GrandTotal, path)
	return nil
}

func readBill(path string) (*invoice.Bill, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var bill invoice.Bill
	if err := json.NewDecoder(r).Decode(&bill); err != nil {
		return nil, fmt.Errorf("decode bill: %w", err)
	}
	if bill.Status == "" {
		bill.Status = invoice.StatusActive
	}
	return &bill, nil
}
