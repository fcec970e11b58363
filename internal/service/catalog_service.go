package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketpos/internal/model"
	"marketpos/internal/repository"
	ws "marketpos/internal/websocket"
)

// --- DTOs ---

type PriceListProductRequest struct {
	Code           string           `json:"code" binding:"required"`
	Name           string           `json:"name" binding:"required"`
	PriceBeforeTax decimal.Decimal  `json:"priceBeforeTax" binding:"required"`
	OfferPrice     *decimal.Decimal `json:"offerPrice"`
	MinThreshold   *int             `json:"minThreshold"`
}

type CreateSupplierRequest struct {
	Name     string                    `json:"name" binding:"required"`
	Products []PriceListProductRequest `json:"products" binding:"dive"`
}

type ReplacePriceListRequest struct {
	Products []PriceListProductRequest `json:"products" binding:"dive"`
}

// ScanResponse is what the POS screen shows after a barcode scan.
type ScanResponse struct {
	SupplierID   uuid.UUID       `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	OfferActive  bool            `json:"offerActive"`
}

// --- Interface ---

type CatalogService interface {
	CreateSupplier(ctx context.Context, userID string, req CreateSupplierRequest) (*model.Supplier, error)
	ReplacePriceList(ctx context.Context, userID, id string, req ReplacePriceListRequest) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, userID, id string) error
	GetSupplier(ctx context.Context, id string) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error)
	Scan(ctx context.Context, code string) (*ScanResponse, error)
}

type catalogService struct {
	supplierRepo repository.SupplierRepository
	sequenceRepo repository.SequenceRepository
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewCatalogService(
	supplierRepo repository.SupplierRepository,
	sequenceRepo repository.SequenceRepository,
	settingsRepo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		supplierRepo: supplierRepo,
		sequenceRepo: sequenceRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// buildProducts derives the tax-inclusive price for every line. The legacy
// stock field always starts at zero; on-hand quantity comes from the
// projector, never from here.
func buildProducts(reqs []PriceListProductRequest) ([]model.Product, error) {
	products := make([]model.Product, 0, len(reqs))
	for i, pr := range reqs {
		if pr.PriceBeforeTax.IsNegative() {
			return nil, fmt.Errorf("product %q: price must not be negative", pr.Code)
		}
		products = append(products, model.Product{
			Code:           pr.Code,
			Name:           pr.Name,
			PriceBeforeTax: pr.PriceBeforeTax,
			PriceAfterTax:  model.WithTax(pr.PriceBeforeTax),
			OfferPrice:     pr.OfferPrice,
			MinThreshold:   pr.MinThreshold,
			Position:       i,
		})
	}
	return products, nil
}

func (s *catalogService) CreateSupplier(ctx context.Context, userID string, req CreateSupplierRequest) (*model.Supplier, error) {
	products, err := buildProducts(req.Products)
	if err != nil {
		return nil, err
	}

	var supplier model.Supplier
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		code, seqErr := s.sequenceRepo.Next(txCtx, model.SeqSupplierCode)
		if seqErr != nil {
			return fmt.Errorf("failed to assign supplier code: %w", seqErr)
		}

		supplier = model.Supplier{
			Name:     req.Name,
			Code:     code,
			Products: products,
		}
		if createErr := s.supplierRepo.Create(txCtx, &supplier); createErr != nil {
			return fmt.Errorf("failed to create supplier: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"code":     supplier.Code,
			"products": len(supplier.Products),
		})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateSupplier,
			EntityID:   supplier.ID.String(),
			EntityName: supplier.Name,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventPriceListSaved, map[string]interface{}{"supplierId": supplier.ID})
	return &supplier, nil
}

// ReplacePriceList swaps the supplier's whole product collection. There is
// deliberately no per-product edit path; the editor re-submits the entire
// array.
func (s *catalogService) ReplacePriceList(ctx context.Context, userID, id string, req ReplacePriceListRequest) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}

	products, err := buildProducts(req.Products)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		supplier, findErr := s.supplierRepo.FindByID(txCtx, supplierID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		if replaceErr := s.supplierRepo.ReplaceProducts(txCtx, supplierID, products); replaceErr != nil {
			return fmt.Errorf("failed to replace price list: %w", replaceErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"products": len(products)})
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionSavePriceList,
			EntityID:   supplier.ID.String(),
			EntityName: supplier.Name,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(ws.EventPriceListSaved, map[string]interface{}{"supplierId": supplierID})
	return s.supplierRepo.FindByID(ctx, supplierID)
}

// DeleteSupplier removes the supplier and cascades its products.
// Historical invoices keep their companyName snapshot and stay readable.
func (s *catalogService) DeleteSupplier(ctx context.Context, userID, id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supplier id: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		supplier, findErr := s.supplierRepo.FindByID(txCtx, supplierID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		if delErr := s.supplierRepo.Delete(txCtx, supplierID); delErr != nil {
			return fmt.Errorf("failed to delete supplier: %w", delErr)
		}

		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteSupplier,
			EntityID:   supplierID.String(),
			EntityName: supplier.Name,
			Details:    `{"deleted": true}`,
		})
	})
	if err != nil {
		return err
	}

	s.hub.Notify(ws.EventPriceListSaved, map[string]interface{}{"supplierId": supplierID})
	return nil
}

func (s *catalogService) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return supplier, nil
}

func (s *catalogService) ListSuppliers(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.supplierRepo.List(ctx, page, limit, search)
}

// Scan resolves a barcode the way the register does: a global lookup over
// every price list (last supplier matched wins on shared codes) priced at
// the configured margin.
func (s *catalogService) Scan(ctx context.Context, code string) (*ScanResponse, error) {
	suppliers, err := s.supplierRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	supplier, product := LookupProduct(suppliers, code)
	if product == nil {
		return nil, ErrProductUnknown
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &ScanResponse{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Code:         product.Code,
		Name:         product.Name,
		SalePrice:    ResolveSalePrice(product, settings.ProfitMargin),
		OfferActive:  product.HasOffer(),
	}, nil
}

// parseUserID tolerates missing or malformed IDs; audit rows then carry a
// null user the same way automated jobs do.
func parseUserID(userID string) *uuid.UUID {
	if parsed, err := uuid.Parse(userID); err == nil {
		return &parsed
	}
	return nil
}
