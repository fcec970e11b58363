package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketpos/internal/model"
	"marketpos/internal/repository"
)

// StockRow is one catalog line with its projected on-hand quantity.
type StockRow struct {
	SupplierID    uuid.UUID       `json:"supplierId"`
	SupplierName  string          `json:"supplierName"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	PriceAfterTax decimal.Decimal `json:"priceAfterTax"`
	Quantity      int             `json:"quantity"`
	Threshold     int             `json:"threshold"`
	Low           bool            `json:"low"`
}

// SupplierLowStock groups replenishment alerts per supplier.
type SupplierLowStock struct {
	SupplierID   uuid.UUID      `json:"supplierId"`
	SupplierName string         `json:"supplierName"`
	Lines        []LowStockLine `json:"lines"`
}

// StockService recomputes the projection from the latest snapshot of both
// stores on every call; there is no cache to invalidate.
type StockService interface {
	StockReport(ctx context.Context) ([]StockRow, error)
	LowStockReport(ctx context.Context) ([]SupplierLowStock, error)
}

type stockService struct {
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
	saleRepo     repository.SaleRepository
}

func NewStockService(
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
) StockService {
	return &stockService{
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
		saleRepo:     saleRepo,
	}
}

func (s *stockService) snapshot(ctx context.Context) ([]model.Supplier, map[StockKey]int, error) {
	suppliers, err := s.supplierRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	sales, err := s.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return suppliers, ProjectStock(suppliers, invoices, sales), nil
}

func (s *stockService) StockReport(ctx context.Context) ([]StockRow, error) {
	suppliers, stock, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var rows []StockRow
	for i := range suppliers {
		sup := &suppliers[i]
		for j := range sup.Products {
			p := &sup.Products[j]
			qty := stock[StockKey{SupplierID: sup.ID, Code: p.Code}]
			rows = append(rows, StockRow{
				SupplierID:    sup.ID,
				SupplierName:  sup.Name,
				Code:          p.Code,
				Name:          p.Name,
				PriceAfterTax: p.PriceAfterTax,
				Quantity:      qty,
				Threshold:     p.EffectiveThreshold(),
				Low:           qty <= p.EffectiveThreshold(),
			})
		}
	}
	return rows, nil
}

func (s *stockService) LowStockReport(ctx context.Context) ([]SupplierLowStock, error) {
	suppliers, stock, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// LowStock walks suppliers in order, so lines for one supplier are
	// contiguous; a new group starts whenever the supplier changes.
	var report []SupplierLowStock
	for _, line := range LowStock(suppliers, stock) {
		if len(report) == 0 || report[len(report)-1].SupplierID != line.SupplierID {
			report = append(report, SupplierLowStock{
				SupplierID:   line.SupplierID,
				SupplierName: line.SupplierName,
			})
		}
		report[len(report)-1].Lines = append(report[len(report)-1].Lines, line)
	}
	return report, nil
}
