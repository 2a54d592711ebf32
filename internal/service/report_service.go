package service

import (
	"context"
	"fmt"
	"time"

	"shopdesk/internal/model"
	"shopdesk/internal/repository"

	"github.com/rs/zerolog"
)

// Report defaults.
const (
	DefaultDailyReportDays = 30
	DefaultTopProducts     = 10
	MaxTopProducts         = 100
)

// reportService implements ReportService.
type reportService struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
	logger     zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(reportRepo repository.ReportRepository, logger zerolog.Logger) ReportService {
	return newReportService(reportRepo, time.Now, logger)
}

func newReportService(reportRepo repository.ReportRepository, now func() time.Time, logger zerolog.Logger) *reportService {
	return &reportService{
		reportRepo: reportRepo,
		now:        now,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

func (s *reportService) GetSalesSummary(ctx context.Context, start, end *time.Time) (model.SalesSummary, error) {
	summary, err := s.reportRepo.GetSalesSummary(ctx, start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get sales summary")
		return model.SalesSummary{}, fmt.Errorf("failed to get sales summary: %w", err)
	}
	return summary, nil
}

// GetDailySalesReport rolls up sales for orders placed within the last days.
func (s *reportService) GetDailySalesReport(ctx context.Context, days int) ([]model.DailySales, error) {
	if days <= 0 {
		days = DefaultDailyReportDays
	}

	since := s.now().AddDate(0, 0, -days)
	report, err := s.reportRepo.GetDailySales(ctx, since)
	if err != nil {
		s.logger.Error().Err(err).Int("days", days).Msg("failed to get daily sales")
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}

	s.logger.Debug().Int("days", days).Int("rows", len(report)).Msg("built daily sales report")
	return report, nil
}

func (s *reportService) GetInventoryValue(ctx context.Context) (model.InventoryValue, error) {
	value, err := s.reportRepo.GetInventoryValue(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get inventory value")
		return model.InventoryValue{}, fmt.Errorf("failed to get inventory value: %w", err)
	}
	return value, nil
}

func (s *reportService) GetTopSellingProducts(ctx context.Context, limit int) ([]model.TopSellingProduct, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	if limit > MaxTopProducts {
		limit = MaxTopProducts
	}

	products, err := s.reportRepo.GetTopSellingProducts(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to get top selling products")
		return nil, fmt.Errorf("failed to get top selling products: %w", err)
	}
	return products, nil
}
