package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/utils"
)

// BillPDFService renders a bill into a downloadable PDF document.
type BillPDFService struct{}

func NewBillPDFService() *BillPDFService {
	return &BillPDFService{}
}

// RenderBillPDF produces an A4 bill document from a bill and its booking. The
// amounts printed are the stored ones; nothing is recomputed here.
func (bs *BillPDFService) RenderBillPDF(bill *models.Bill, booking *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, "UrbanServe Home Services")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, "support@urbanserve.example")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, "SERVICE BILL")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, fmt.Sprintf("Booking Ref: %s", booking.ReferenceNo))
	pdf.Cell(95, 6, fmt.Sprintf("Generated: %s", bill.GeneratedAt.Format("January 2, 2006")))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Service: %s", booking.ServiceName))
	pdf.Cell(95, 6, fmt.Sprintf("Status: %s", bill.Status))
	pdf.Ln(12)

	// Line item table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 8, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(15, 8, "Qty", "", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "GST %", "", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "GST", "", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Total", "", 1, "R", true, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	for _, item := range bill.Items {
		name := item.Name
		if item.IsOriginal {
			name += " (booked)"
		}
		pdf.CellFormat(70, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, item.GSTPercentage.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, item.GSTAmount.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, item.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if bill.VisitingCharges.GreaterThan(decimal.Zero) {
		pdf.CellFormat(160, 6, "Visiting charges", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, bill.VisitingCharges.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)

	// Totals
	bs.totalRow(pdf, "Service charges", bill.TotalServiceBase, false)
	bs.totalRow(pdf, "Parts and materials", bill.TotalPartsBase, false)
	bs.totalRow(pdf, "Total GST", bill.TotalGST, false)
	bs.totalRow(pdf, "Grand Total", bill.GrandTotal, true)

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Amount payable: %s", utils.FormatCurrencyINR(bill.GrandTotal)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render bill pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (bs *BillPDFService) totalRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal, bold bool) {
	if bold {
		pdf.SetFont("Arial", "B", 12)
	} else {
		pdf.SetFont("Arial", "", 10)
	}
	pdf.CellFormat(160, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}
