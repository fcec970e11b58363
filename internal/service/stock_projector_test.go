package service

import (
	"testing"

	"github.com/google/uuid"

	"marketpos/internal/model"
)

func supplierWith(name string, codes ...string) model.Supplier {
	sup := model.Supplier{ID: uuid.New(), Name: name}
	for _, code := range codes {
		sup.Products = append(sup.Products, model.Product{Code: code, Name: "product " + code})
	}
	return sup
}

func deliveredInvoice(companyID uuid.UUID, code string, qty int) model.PurchaseInvoice {
	return model.PurchaseInvoice{
		CompanyID: companyID,
		Status:    model.StatusDelivered,
		Items:     []model.InvoiceItem{{Code: code, Quantity: qty}},
	}
}

func saleOf(code string, qty int) model.Sale {
	return model.Sale{Items: []model.SaleItem{{Code: code, Quantity: qty}}}
}

func TestProjectStockFoldsDeliveredMinusSold(t *testing.T) {
	sup := supplierWith("Acme", "A1")

	invoices := []model.PurchaseInvoice{
		deliveredInvoice(sup.ID, "A1", 10),
		deliveredInvoice(sup.ID, "A1", 5),
	}
	sales := []model.Sale{saleOf("A1", 3), saleOf("A1", 4)}

	stock := ProjectStock([]model.Supplier{sup}, invoices, sales)

	got := stock[StockKey{SupplierID: sup.ID, Code: "A1"}]
	if got != 8 {
		t.Fatalf("stock = %d, want 8", got)
	}
}

func TestProjectStockIgnoresUndeliveredInvoices(t *testing.T) {
	sup := supplierWith("Acme", "A1")

	pending := deliveredInvoice(sup.ID, "A1", 10)
	pending.Status = model.StatusNotDelivered

	stock := ProjectStock([]model.Supplier{sup}, []model.PurchaseInvoice{pending}, nil)

	if got := stock[StockKey{SupplierID: sup.ID, Code: "A1"}]; got != 0 {
		t.Fatalf("stock = %d, want 0 for undelivered invoice", got)
	}
}

func TestProjectStockGoesNegativeOnOversell(t *testing.T) {
	sup := supplierWith("Acme", "A1")

	invoices := []model.PurchaseInvoice{deliveredInvoice(sup.ID, "A1", 2)}
	sales := []model.Sale{saleOf("A1", 5)}

	stock := ProjectStock([]model.Supplier{sup}, invoices, sales)

	if got := stock[StockKey{SupplierID: sup.ID, Code: "A1"}]; got != -3 {
		t.Fatalf("stock = %d, want -3 (no clamping)", got)
	}
}

func TestProjectStockIsIdempotent(t *testing.T) {
	sup := supplierWith("Acme", "A1", "B2")
	invoices := []model.PurchaseInvoice{
		deliveredInvoice(sup.ID, "A1", 7),
		deliveredInvoice(sup.ID, "B2", 4),
	}
	sales := []model.Sale{saleOf("A1", 2)}

	first := ProjectStock([]model.Supplier{sup}, invoices, sales)
	second := ProjectStock([]model.Supplier{sup}, invoices, sales)

	if len(first) != len(second) {
		t.Fatalf("projections differ in size: %d vs %d", len(first), len(second))
	}
	for key, qty := range first {
		if second[key] != qty {
			t.Errorf("projection not stable for %v: %d vs %d", key, qty, second[key])
		}
	}
}

// A product code shared by two suppliers has each sale of that code
// subtracted from both projections, because the register lookup is not
// scoped to a supplier.
func TestProjectStockSharedCodeSubtractsFromEverySupplier(t *testing.T) {
	supA := supplierWith("Acme", "X9")
	supB := supplierWith("Bolt", "X9")

	invoices := []model.PurchaseInvoice{
		deliveredInvoice(supA.ID, "X9", 10),
		deliveredInvoice(supB.ID, "X9", 20),
	}
	sales := []model.Sale{saleOf("X9", 3)}

	stock := ProjectStock([]model.Supplier{supA, supB}, invoices, sales)

	if got := stock[StockKey{SupplierID: supA.ID, Code: "X9"}]; got != 7 {
		t.Errorf("supplier A stock = %d, want 7", got)
	}
	if got := stock[StockKey{SupplierID: supB.ID, Code: "X9"}]; got != 17 {
		t.Errorf("supplier B stock = %d, want 17", got)
	}
}

func TestProjectStockDeliveriesAreScopedToSupplier(t *testing.T) {
	supA := supplierWith("Acme", "X9")
	supB := supplierWith("Bolt", "X9")

	invoices := []model.PurchaseInvoice{deliveredInvoice(supA.ID, "X9", 10)}

	stock := ProjectStock([]model.Supplier{supA, supB}, invoices, nil)

	if got := stock[StockKey{SupplierID: supB.ID, Code: "X9"}]; got != 0 {
		t.Fatalf("supplier B stock = %d, want 0 (deliveries must not leak across suppliers)", got)
	}
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	sup := supplierWith("Acme", "A1", "B2", "C3")

	threshold := 3
	sup.Products[0].MinThreshold = &threshold // qty == threshold -> alert
	sup.Products[1].MinThreshold = &threshold // qty == threshold+1 -> quiet
	// Products[2] uses the default threshold of 5.

	stock := map[StockKey]int{
		{SupplierID: sup.ID, Code: "A1"}: 3,
		{SupplierID: sup.ID, Code: "B2"}: 4,
		{SupplierID: sup.ID, Code: "C3"}: 5,
	}

	lines := LowStock([]model.Supplier{sup}, stock)

	codes := make(map[string]LowStockLine, len(lines))
	for _, line := range lines {
		codes[line.Code] = line
	}

	if _, ok := codes["A1"]; !ok {
		t.Error("A1 at its threshold should alert")
	}
	if _, ok := codes["B2"]; ok {
		t.Error("B2 above its threshold should not alert")
	}
	line, ok := codes["C3"]
	if !ok {
		t.Fatal("C3 at the default threshold should alert")
	}
	if line.Threshold != model.DefaultMinThreshold {
		t.Errorf("C3 threshold = %d, want default %d", line.Threshold, model.DefaultMinThreshold)
	}
}

func TestLowStockIncludesNegativeQuantities(t *testing.T) {
	sup := supplierWith("Acme", "A1")

	stock := map[StockKey]int{{SupplierID: sup.ID, Code: "A1"}: -2}

	lines := LowStock([]model.Supplier{sup}, stock)
	if len(lines) != 1 {
		t.Fatalf("got %d alerts, want 1", len(lines))
	}
	if lines[0].Quantity != -2 {
		t.Errorf("alert quantity = %d, want -2 surfaced as-is", lines[0].Quantity)
	}
}
