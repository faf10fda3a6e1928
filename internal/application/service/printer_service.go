package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/printer"
	"github.com/sirupsen/logrus"
)

// Receipt is the printable view of a settled document
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	DocumentNo  string        `json:"document_no"`
	Date        string        `json:"date"`
	Cashier     string        `json:"cashier"`
	Client      string        `json:"client,omitempty"`
	PaymentType string        `json:"payment_type,omitempty"`
	Items       []ReceiptItem `json:"items"`
	Total       float64       `json:"total"`
	Paid        float64       `json:"paid"`
	Due         float64       `json:"due"`
	Footer      string        `json:"footer,omitempty"`
	IsReturn    bool          `json:"is_return"`
}

// ReceiptHeader holds the business block at the top of a receipt
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	StoreName    string `json:"store_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// ReceiptItem is one printed line
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// PrinterService handles receipt formatting and thermal printing
type PrinterService struct {
	printer      printer.Device
	orderRepo    repository.SalesOrderRepository
	returnRepo   repository.SalesReturnRepository
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Device,
	orderRepo repository.SalesOrderRepository,
	returnRepo repository.SalesReturnRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		orderRepo:    orderRepo,
		returnRepo:   returnRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.Ready(),
		Type:       s.printerType,
	}
}

func (s *PrinterService) header(ctx context.Context) ReceiptHeader {
	header := ReceiptHeader{BusinessName: "POS"}
	settings, err := s.settingsRepo.Get(ctx)
	if err == nil && settings != nil {
		header.BusinessName = settings.BusinessName
	}
	return header
}

func (s *PrinterService) footer(ctx context.Context) string {
	settings, err := s.settingsRepo.Get(ctx)
	if err == nil && settings != nil && settings.ReceiptFooter != nil {
		return *settings.ReceiptFooter
	}
	return ""
}

// TestPrint sends a test page to the printer. Returns the receipt data
// so the handler can return it as JSON when the printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*Receipt, error) {
	receipt := &Receipt{
		Header:     s.header(ctx),
		DocumentNo: "TEST-001",
		Date:       "Test Date",
		Cashier:    "System",
		Items: []ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Total:  20.00,
		Paid:   20.00,
		Footer: s.footer(ctx),
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintOrderReceipt fetches an order with its lines and prints a receipt
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*Receipt, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	receipt := &Receipt{
		Header:      s.header(ctx),
		DocumentNo:  order.InvoiceNo,
		Date:        order.OrderDate.Format("2006-01-02 15:04"),
		Cashier:     order.Employee.FullName,
		PaymentType: order.PaymentType.String(),
		Total:       float64(order.TotalAmount) / 100,
		Paid:        float64(order.AmountPaid) / 100,
		Due:         float64(order.AmountRemaining) / 100,
		Footer:      s.footer(ctx),
	}

	if order.Client != nil {
		receipt.Client = order.Client.Name
	}

	for _, line := range order.Items {
		item := ReceiptItem{
			Quantity:  line.Quantity,
			UnitPrice: float64(line.UnitPrice) / 100,
			Total:     float64(line.Total) / 100,
		}
		if line.Product.Name != "" {
			item.Name = line.Product.Name
		} else {
			item.Name = "Product"
		}
		receipt.Items = append(receipt.Items, item)
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		logrus.WithError(err).WithField("invoice_no", order.InvoiceNo).Error("receipt print failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintReturnReceipt fetches a sales return and prints a credit receipt
func (s *PrinterService) PrintReturnReceipt(ctx context.Context, returnID uuid.UUID) (*Receipt, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}

	receipt := &Receipt{
		Header:      s.header(ctx),
		DocumentNo:  ret.ReturnNo,
		Date:        ret.ReturnDate.Format("2006-01-02 15:04"),
		Cashier:     ret.Employee.FullName,
		PaymentType: ret.PaymentType.String(),
		Total:       float64(ret.TotalAmount) / 100,
		Paid:        float64(ret.AmountPaid) / 100,
		Due:         float64(ret.AmountRemaining) / 100,
		Footer:      s.footer(ctx),
		IsReturn:    true,
	}

	if ret.Client != nil {
		receipt.Client = ret.Client.Name
	}

	for _, line := range ret.Items {
		item := ReceiptItem{
			Quantity:  line.Quantity,
			UnitPrice: float64(line.UnitPrice) / 100,
			Total:     float64(line.Total) / 100,
		}
		if line.Product.Name != "" {
			item.Name = line.Product.Name
		} else {
			item.Name = "Product"
		}
		receipt.Items = append(receipt.Items, item)
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		logrus.WithError(err).WithField("return_no", ret.ReturnNo).Error("receipt print failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes
func FormatReceipt(r *Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.StoreName != "" {
		doc.Text(r.Header.StoreName)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.IsReturn {
		doc.SetBold(true).Text("*** RETURN ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Document:", r.DocumentNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Client != "" {
		doc.KeyValue("Client:", r.Client)
	}
	if r.PaymentType != "" {
		doc.KeyValue("Payment:", r.PaymentType)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity != 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.Paid > 0 {
		doc.KeyValue("Paid:", fmt.Sprintf("%.2f", r.Paid))
	}
	if r.Due > 0 {
		doc.KeyValue("Due:", fmt.Sprintf("%.2f", r.Due))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you for your business!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
