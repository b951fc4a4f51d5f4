package services_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/urbanserve/homeservice-app/models"
	"github.com/urbanserve/homeservice-app/services"
)

func TestRenderBillPDF(t *testing.T) {
	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		assert.NoError(t, err)
		return d
	}

	booking := models.Booking{
		ReferenceNo: "BKG-20260831-AB12CD34",
		ServiceName: "AC Repair",
	}
	bill := models.Bill{
		Status:           models.BillGenerated,
		GeneratedAt:      time.Now(),
		TotalServiceBase: dec("1200.00"),
		TotalPartsBase:   dec("200.00"),
		VisitingCharges:  dec("50.00"),
		TotalGST:         dec("252.00"),
		GrandTotal:       dec("1702.00"),
		Items: []models.BillItem{
			{
				Name:          "AC Repair",
				Quantity:      1,
				UnitPrice:     dec("1000.00"),
				GSTPercentage: dec("18.00"),
				GSTAmount:     dec("180.00"),
				Total:         dec("1180.00"),
				IsOriginal:    true,
			},
			{
				Name:          "Capacitor",
				Quantity:      2,
				UnitPrice:     dec("100.00"),
				GSTPercentage: dec("18.00"),
				GSTAmount:     dec("36.00"),
				Total:         dec("236.00"),
			},
		},
	}

	pdfBytes, err := services.NewBillPDFService().RenderBillPDF(&bill, &booking)
	assert.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}
