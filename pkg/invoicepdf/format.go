package invoicepdf

import (
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/shopspring/decimal"
)

const placeholder = "-"

// DateLayout renders dates day/month/year without zero padding.
const DateLayout = "2/1/2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return formatDate(*t)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func formatWeight(s string) string {
	return invoice.ParseAmount(s).StringFixed(3)
}

func formatMoney(s string) string {
	return invoice.ParseAmount(s).StringFixed(2)
}

func formatRupees(n int64) string {
	return strconv.FormatInt(n, 10)
}

// percentLabel renders 0.015 as "1.5%".
func percentLabel(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FileName is the download name of a bill's invoice document.
func FileName(invoiceNo string) string {
	return "Invoice_" + invoiceNo + ".pdf"
}
