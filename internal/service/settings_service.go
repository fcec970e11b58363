package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
	"marketpos/internal/repository"
)

type UpdateSettingsRequest struct {
	ProgramName   string            `json:"programName"`
	ProfitMargin  *decimal.Decimal  `json:"profitMargin"`
	SideMenuNames map[string]string `json:"sideMenuNames"`
}

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, userID string, req UpdateSettingsRequest) (*model.Settings, error)
}

type settingsService struct {
	repo      repository.SettingsRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewSettingsService(repo repository.SettingsRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) SettingsService {
	return &settingsService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, userID string, req UpdateSettingsRequest) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if req.ProgramName != "" {
		settings.ProgramName = req.ProgramName
	}
	if req.ProfitMargin != nil {
		if req.ProfitMargin.IsNegative() {
			return nil, errors.New("profit margin must not be negative")
		}
		settings.ProfitMargin = *req.ProfitMargin
	}
	if req.SideMenuNames != nil {
		settings.SideMenuNames = req.SideMenuNames
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if saveErr := s.repo.Save(txCtx, settings); saveErr != nil {
			return fmt.Errorf("failed to save settings: %w", saveErr)
		}
		details, _ := json.Marshal(req)
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:  parseUserID(userID),
			Action:  model.ActionUpdateSettings,
			Details: string(details),
		})
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
