package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketpos/internal/model"
	"marketpos/internal/repository"
	ws "marketpos/internal/websocket"
)

// --- DTOs ---

type InvoiceLineRequest struct {
	Code     string `json:"code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateInvoiceRequest struct {
	CompanyID string               `json:"companyId" binding:"required"`
	Items     []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
}

type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InvoiceListRequest struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// SettlementResponse carries the updated invoice plus the overpayment
// flag, which is clamped out of the stored fields and would otherwise be
// invisible to the caller.
type SettlementResponse struct {
	Invoice  *model.PurchaseInvoice `json:"invoice"`
	Overpaid bool                   `json:"overpaid"`
}

// --- Interface ---

type PurchaseService interface {
	CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (*model.PurchaseInvoice, error)
	GetInvoice(ctx context.Context, id int64) (*model.PurchaseInvoice, error)
	ListInvoices(ctx context.Context, req InvoiceListRequest) ([]model.PurchaseInvoice, int64, error)
	ApplyPayment(ctx context.Context, userID string, id int64, req ApplyPaymentRequest) (*SettlementResponse, error)
	SetDeliveryStatus(ctx context.Context, userID string, id int64, req SetStatusRequest) (*model.PurchaseInvoice, error)
}

type purchaseService struct {
	invoiceRepo  repository.InvoiceRepository
	supplierRepo repository.SupplierRepository
	sequenceRepo repository.SequenceRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewPurchaseService(
	invoiceRepo repository.InvoiceRepository,
	supplierRepo repository.SupplierRepository,
	sequenceRepo repository.SequenceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		sequenceRepo: sequenceRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// CreateInvoice finalizes a purchase order against one supplier. Line
// lookup is scoped to that supplier's price list — unlike the register
// scan — and every line is priced at the tax-inclusive list price. The
// item list is immutable once written.
func (s *purchaseService) CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (*model.PurchaseInvoice, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("invalid companyId: %w", err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	byCode := make(map[string]*model.Product, len(supplier.Products))
	for i := range supplier.Products {
		byCode[supplier.Products[i].Code] = &supplier.Products[i]
	}

	items := make([]model.InvoiceItem, 0, len(req.Items))
	total := decimal.Zero
	for i, line := range req.Items {
		product, ok := byCode[line.Code]
		if !ok {
			return nil, fmt.Errorf("%w: code %q is not registered for supplier %q",
				ErrProductUnknown, line.Code, supplier.Name)
		}
		lineTotal := product.PriceAfterTax.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, model.InvoiceItem{
			Code:     product.Code,
			Name:     product.Name,
			Price:    product.PriceAfterTax,
			Quantity: line.Quantity,
			Total:    lineTotal,
			Position: i,
		})
		total = total.Add(lineTotal)
	}

	var invoice model.PurchaseInvoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		id, seqErr := s.sequenceRepo.Next(txCtx, model.SeqInvoiceID)
		if seqErr != nil {
			return fmt.Errorf("failed to assign invoice id: %w", seqErr)
		}

		invoice = model.PurchaseInvoice{
			ID:          id,
			CompanyID:   supplier.ID,
			CompanyName: supplier.Name, // snapshot so history survives supplier deletion
			Date:        time.Now(),
			Items:       items,
			TotalValue:  total,
			Status:      model.StatusNotDelivered,
			PaidAmount:  decimal.Zero,
			Remaining:   total,
		}
		if createErr := s.invoiceRepo.Create(txCtx, &invoice); createErr != nil {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"companyId":  supplier.ID.String(),
			"totalValue": total,
			"items":      len(items),
		})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateInvoice,
			EntityID:   fmt.Sprintf("%d", invoice.ID),
			EntityName: supplier.Name,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventInvoiceCreated, map[string]interface{}{"id": invoice.ID})
	return &invoice, nil
}

func (s *purchaseService) GetInvoice(ctx context.Context, id int64) (*model.PurchaseInvoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return invoice, nil
}

func (s *purchaseService) ListInvoices(ctx context.Context, req InvoiceListRequest) ([]model.PurchaseInvoice, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Status != "" && req.Status != model.StatusDelivered && req.Status != model.StatusNotDelivered {
		return nil, 0, ErrInvalidStatus
	}
	return s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		Status: req.Status,
		Search: req.Search,
		Page:   req.Page,
		Limit:  req.Limit,
	})
}

// ApplyPayment records one installment. The invoice row is locked for the
// duration of the transaction, so concurrent payments against the same
// invoice serialize rather than overwrite each other.
func (s *purchaseService) ApplyPayment(ctx context.Context, userID string, id int64, req ApplyPaymentRequest) (*SettlementResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPayment
	}

	var invoice *model.PurchaseInvoice
	var overpaid bool
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		var applyErr error
		overpaid, applyErr = ApplyPayment(invoice, req.Amount, time.Now())
		if applyErr != nil {
			return applyErr
		}

		newPayment := &invoice.Payments[len(invoice.Payments)-1]
		if appendErr := s.invoiceRepo.AppendPayment(txCtx, newPayment); appendErr != nil {
			return fmt.Errorf("failed to record payment: %w", appendErr)
		}
		if updateErr := s.invoiceRepo.UpdateSettlement(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update settlement: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"amount":     req.Amount,
			"paidAmount": invoice.PaidAmount,
			"remaining":  invoice.Remaining,
			"overpaid":   overpaid,
		})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionApplyPayment,
			EntityID:   fmt.Sprintf("%d", invoice.ID),
			EntityName: invoice.CompanyName,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventInvoicePaid, map[string]interface{}{
		"id":        invoice.ID,
		"remaining": invoice.Remaining,
	})
	return &SettlementResponse{Invoice: invoice, Overpaid: overpaid}, nil
}

// SetDeliveryStatus flips the delivery flag. Stock reflects the change
// the next time the projector runs; nothing is cached.
func (s *purchaseService) SetDeliveryStatus(ctx context.Context, userID string, id int64, req SetStatusRequest) (*model.PurchaseInvoice, error) {
	var invoice *model.PurchaseInvoice
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		if statusErr := SetDeliveryStatus(invoice, req.Status); statusErr != nil {
			return statusErr
		}
		if updateErr := s.invoiceRepo.UpdateStatus(txCtx, id, invoice.Status); updateErr != nil {
			return fmt.Errorf("failed to update status: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"status": invoice.Status})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionSetStatus,
			EntityID:   fmt.Sprintf("%d", invoice.ID),
			EntityName: invoice.CompanyName,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventInvoiceStatus, map[string]interface{}{
		"id":     invoice.ID,
		"status": invoice.Status,
	})
	return invoice, nil
}
