package service

import (
	"github.com/google/uuid"

	"marketpos/internal/model"
)

// StockKey identifies a product within its owning supplier's price list.
type StockKey struct {
	SupplierID uuid.UUID
	Code       string
}

// ProjectStock computes the current on-hand quantity per (supplier, code)
// by folding the ledger: delivered invoice quantities add, sale quantities
// subtract. It is a pure function recomputed on every call; nothing is
// cached and no value is clamped, so quantities go negative on oversell.
//
// Invoice-side matching is scoped to the invoice's supplier, but sale-side
// matching is global by product code: a code shared by two suppliers has
// every sale of that code subtracted from each of them. This mirrors the
// unscoped point-of-sale lookup and is kept as-is rather than silently
// corrected, since the low-stock alerts downstream depend on it.
func ProjectStock(suppliers []model.Supplier, invoices []model.PurchaseInvoice, sales []model.Sale) map[StockKey]int {
	// Delivered deliveries grouped by (companyId, code).
	delivered := make(map[StockKey]int)
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status != model.StatusDelivered {
			continue
		}
		for _, item := range inv.Items {
			delivered[StockKey{SupplierID: inv.CompanyID, Code: item.Code}] += item.Quantity
		}
	}

	// Sales grouped by code alone.
	sold := make(map[string]int)
	for i := range sales {
		for _, item := range sales[i].Items {
			sold[item.Code] += item.Quantity
		}
	}

	stock := make(map[StockKey]int)
	for i := range suppliers {
		sup := &suppliers[i]
		for j := range sup.Products {
			key := StockKey{SupplierID: sup.ID, Code: sup.Products[j].Code}
			stock[key] = delivered[key] - sold[sup.Products[j].Code]
		}
	}
	return stock
}

// LowStockLine is one replenishment alert row.
type LowStockLine struct {
	SupplierID   uuid.UUID `json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	Threshold    int       `json:"threshold"`
}

// LowStock flags every product whose projected quantity is at or below its
// effective threshold. The boundary is inclusive: quantity == threshold
// still alerts.
func LowStock(suppliers []model.Supplier, stock map[StockKey]int) []LowStockLine {
	var lines []LowStockLine
	for i := range suppliers {
		sup := &suppliers[i]
		for j := range sup.Products {
			p := &sup.Products[j]
			qty := stock[StockKey{SupplierID: sup.ID, Code: p.Code}]
			if qty <= p.EffectiveThreshold() {
				lines = append(lines, LowStockLine{
					SupplierID:   sup.ID,
					SupplierName: sup.Name,
					Code:         p.Code,
					Name:         p.Name,
					Quantity:     qty,
					Threshold:    p.EffectiveThreshold(),
				})
			}
		}
	}
	return lines
}
