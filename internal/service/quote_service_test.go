package service

import (
	"context"
	"testing"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestQuoteCreateComputesTotalAndNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewQuoteService(repository.NewQuoteRepository(db))
	ctx := context.Background()

	quote, err := svc.Create(ctx, QuoteRequest{
		Title:         "Industrial Railing System",
		MaterialsCost: decimal.NewFromFloat(1250.00),
		LaborCost:     decimal.NewFromFloat(3000.00),
		TaxRate:       decimal.NewFromFloat(0.05),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !quote.TotalAmount.Equal(decimal.NewFromFloat(4462.50)) {
		t.Errorf("TotalAmount = %s, want 4462.50", quote.TotalAmount)
	}
	if quote.Status != entity.QuoteStatusDraft {
		t.Errorf("Status = %s, want draft", quote.Status)
	}

	second, err := svc.Create(ctx, QuoteRequest{Title: "Another"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if quote.QuoteNumber == second.QuoteNumber {
		t.Errorf("Quote numbers should differ: %s", quote.QuoteNumber)
	}
}

func TestInvoicePaymentProgression(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewInvoiceService(repository.NewInvoiceRepository(db))
	ctx := context.Background()

	due := time.Now().Add(14 * 24 * time.Hour)
	invoice, err := svc.Create(ctx, InvoiceRequest{
		Subtotal:  decimal.NewFromFloat(1000.00),
		TaxAmount: decimal.NewFromFloat(50.00),
		DueDate:   &due,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if invoice.Status != entity.InvoiceStatusPending {
		t.Errorf("Status = %s, want pending", invoice.Status)
	}
	if !invoice.TotalAmount.Equal(decimal.NewFromFloat(1050.00)) {
		t.Errorf("TotalAmount = %s, want 1050.00", invoice.TotalAmount)
	}

	// 部分收款
	invoice, err = svc.RecordPayment(ctx, invoice.ID, decimal.NewFromFloat(500.00), "bank_transfer")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if invoice.Status != entity.InvoiceStatusPartial {
		t.Errorf("Status = %s after partial payment, want partial", invoice.Status)
	}

	// 付清
	invoice, err = svc.RecordPayment(ctx, invoice.ID, decimal.NewFromFloat(550.00), "")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if invoice.Status != entity.InvoiceStatusPaid {
		t.Errorf("Status = %s after full payment, want paid", invoice.Status)
	}
	if invoice.PaidDate == nil {
		t.Error("PaidDate should be set on full payment")
	}
}
