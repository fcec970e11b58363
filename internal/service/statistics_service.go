package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketpos/internal/repository"
)

// DailySummary aggregates one day of register activity.
type DailySummary struct {
	Date        string          `json:"date"`
	SalesCount  int64           `json:"salesCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	Outstanding decimal.Decimal `json:"outstanding"` // unpaid balance across all purchase invoices
}

type StatisticsService interface {
	Summary(ctx context.Context, day string) (*DailySummary, error)
}

type statisticsService struct {
	saleRepo    repository.SaleRepository
	invoiceRepo repository.InvoiceRepository
}

func NewStatisticsService(saleRepo repository.SaleRepository, invoiceRepo repository.InvoiceRepository) StatisticsService {
	return &statisticsService{saleRepo: saleRepo, invoiceRepo: invoiceRepo}
}

// Summary reports the given day ("2006-01-02", empty means today) plus the
// outstanding payables total, which is date-independent.
func (s *statisticsService) Summary(ctx context.Context, day string) (*DailySummary, error) {
	var from time.Time
	if day == "" {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", day, err)
		}
		from = parsed
	}
	to := from.Add(24 * time.Hour)

	count, revenue, err := s.saleRepo.Summary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}
	outstanding, err := s.invoiceRepo.SumOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total payables: %w", err)
	}

	return &DailySummary{
		Date:        from.Format("2006-01-02"),
		SalesCount:  count,
		Revenue:     revenue,
		Outstanding: outstanding,
	}, nil
}
