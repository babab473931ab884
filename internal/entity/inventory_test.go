package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStockStatusClassification(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		min      int
		want     string
	}{
		{"zero quantity is out of stock", 0, 5, StockStatusOut},
		{"negative quantity is out of stock", -2, 0, StockStatusOut},
		{"at threshold is low stock", 5, 5, StockStatusLow},
		{"below threshold is low stock", 3, 5, StockStatusLow},
		{"above threshold is in stock", 6, 5, StockStatusIn},
		{"zero threshold with stock is in stock", 1, 0, StockStatusIn},
	}

	for _, tc := range cases {
		item := InventoryItem{Quantity: tc.quantity, MinQuantity: tc.min}
		if got := item.StockStatus(); got != tc.want {
			t.Errorf("%s: StockStatus() = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestIsLowStockIncludesOutOfStock(t *testing.T) {
	out := InventoryItem{Quantity: 0, MinQuantity: 5}
	if !out.IsLowStock() {
		t.Error("Out-of-stock item should count as low stock")
	}
	ok := InventoryItem{Quantity: 10, MinQuantity: 5}
	if ok.IsLowStock() {
		t.Error("Well-stocked item should not count as low stock")
	}
}

func TestIsConsumable(t *testing.T) {
	consumable := InventoryItem{Category: CategoryConsumables}
	gas := InventoryItem{Category: CategoryGas}
	wire := InventoryItem{Category: CategoryWeldingWire}

	if !consumable.IsConsumable() || !gas.IsConsumable() {
		t.Error("Consumables and Gas categories should be consumable")
	}
	if wire.IsConsumable() {
		t.Error("Welding Wire should not be consumable")
	}
}

func TestTotalValue(t *testing.T) {
	item := InventoryItem{Quantity: 3, UnitPrice: decimal.NewFromFloat(45.99)}
	want := decimal.NewFromFloat(137.97)
	if !item.TotalValue().Equal(want) {
		t.Errorf("TotalValue() = %s, want %s", item.TotalValue(), want)
	}
}

func TestQuoteComputeTotal(t *testing.T) {
	quote := Quote{
		MaterialsCost: decimal.NewFromFloat(1250.00),
		LaborCost:     decimal.NewFromFloat(3000.00),
		TaxRate:       decimal.NewFromFloat(0.05),
	}
	want := decimal.NewFromFloat(4462.50)
	if !quote.ComputeTotal().Equal(want) {
		t.Errorf("ComputeTotal() = %s, want %s", quote.ComputeTotal(), want)
	}
}

func TestStatusColorFallback(t *testing.T) {
	if StatusColor(ProjectStatusInProgress) == "" {
		t.Error("Known status should have a color")
	}
	if got := StatusColor("bogus"); got != "#374151" {
		t.Errorf("Unknown status color = %s, want #374151", got)
	}
}
