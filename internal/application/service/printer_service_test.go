package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReceipt() *Receipt {
	return &Receipt{
		Header:      ReceiptHeader{BusinessName: "Hisably Store"},
		DocumentNo:  "ORD-000042",
		Date:        "2026-03-14 09:30",
		Cashier:     "Nino B.",
		Client:      "Acme Ltd",
		PaymentType: "cash",
		Items: []ReceiptItem{
			{Name: "Mineral Water 0.5L", Quantity: 3, UnitPrice: 1.50, Total: 4.50},
			{Name: "Bread", Quantity: 1, UnitPrice: 0.90, Total: 0.90},
		},
		Total: 5.40,
		Paid:  5.40,
	}
}

func TestFormatReceiptContainsDocumentLines(t *testing.T) {
	out := string(FormatReceipt(sampleReceipt()))

	assert.Contains(t, out, "Hisably Store")
	assert.Contains(t, out, "ORD-000042")
	assert.Contains(t, out, "Nino B.")
	assert.Contains(t, out, "Acme Ltd")
	assert.Contains(t, out, "Mineral Water 0.5L")
	assert.Contains(t, out, "5.40")
	assert.NotContains(t, out, "*** RETURN ***")
}

func TestFormatReceiptUnitPriceShownOnlyForMultiples(t *testing.T) {
	out := string(FormatReceipt(sampleReceipt()))

	assert.Contains(t, out, "@ 1.50 each")
	assert.NotContains(t, out, "@ 0.90 each")
}

func TestFormatReceiptReturnBanner(t *testing.T) {
	r := sampleReceipt()
	r.IsReturn = true
	r.Paid = 0

	out := string(FormatReceipt(r))
	assert.Contains(t, out, "*** RETURN ***")
	assert.NotContains(t, out, "Paid:")
}

func TestFormatReceiptDefaultFooter(t *testing.T) {
	out := string(FormatReceipt(sampleReceipt()))
	assert.Contains(t, out, "Thank you for your business!")

	r := sampleReceipt()
	r.Footer = "See you soon"
	out = string(FormatReceipt(r))
	assert.Contains(t, out, "See you soon")
	assert.False(t, strings.Contains(out, "Thank you for your business!"))
}

func TestFormatReceiptShowsDueLine(t *testing.T) {
	r := sampleReceipt()
	r.Paid = 3.00
	r.Due = 2.40

	out := string(FormatReceipt(r))
	assert.Contains(t, out, "Due:")
	assert.Contains(t, out, "2.40")
}
