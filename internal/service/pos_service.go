package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
	"marketpos/internal/repository"
	ws "marketpos/internal/websocket"
)

// --- DTOs ---

type SaleLineRequest struct {
	Code     string `json:"code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	Items    []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	Received decimal.Decimal   `json:"received"`
}

// --- Interface ---

type POSService interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*model.Sale, error)
	ListSales(ctx context.Context, page, limit int) ([]model.Sale, int64, error)
}

type posService struct {
	saleRepo     repository.SaleRepository
	supplierRepo repository.SupplierRepository
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewPOSService(
	saleRepo repository.SaleRepository,
	supplierRepo repository.SupplierRepository,
	settingsRepo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) POSService {
	return &posService{
		saleRepo:     saleRepo,
		supplierRepo: supplierRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// Checkout prices every scanned line server-side and appends one immutable
// receipt. An unknown code rejects the whole request before anything is
// written. Change may come out negative when the customer underpays; the
// register records it as tendered.
func (s *posService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*model.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	suppliers, err := s.supplierRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	items := make([]model.SaleItem, 0, len(req.Items))
	total := decimal.Zero
	for i, line := range req.Items {
		_, product := LookupProduct(suppliers, line.Code)
		if product == nil {
			return nil, fmt.Errorf("%w: code %q", ErrProductUnknown, line.Code)
		}
		price := ResolveSalePrice(product, settings.ProfitMargin)
		lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, model.SaleItem{
			Code:     product.Code,
			Name:     product.Name,
			Price:    price,
			Quantity: line.Quantity,
			Total:    lineTotal,
			Position: i,
		})
		total = total.Add(lineTotal)
	}

	sale := model.Sale{
		Date:       time.Now(),
		Items:      items,
		TotalValue: total,
		Received:   req.Received,
		Change:     req.Received.Sub(total),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.saleRepo.Create(txCtx, &sale); createErr != nil {
			return fmt.Errorf("failed to record sale: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"totalValue": total,
			"received":   req.Received,
			"items":      len(items),
		})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:   parseUserID(userID),
			Action:   model.ActionRecordSale,
			EntityID: sale.ID.String(),
			Details:  string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventSaleRecorded, map[string]interface{}{"id": sale.ID})
	return &sale, nil
}

func (s *posService) ListSales(ctx context.Context, page, limit int) ([]model.Sale, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.saleRepo.List(ctx, page, limit)
}
