package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
)

type ReportService interface {
	// DailyReport aggregates the orders created on the UTC calendar day of date.
	DailyReport(ctx context.Context, date time.Time) (model.DailyReport, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) DailyReport(ctx context.Context, date time.Time) (model.DailyReport, error) {
	start, end := model.DayWindow(date)

	stats, err := s.reportRepo.GetOrderStats(ctx, start, end)
	if err != nil {
		return model.DailyReport{}, fmt.Errorf("report repository get order stats: %w", err)
	}

	topProducts, err := s.reportRepo.ListTopProducts(ctx, start, end, model.TopProductsLimit)
	if err != nil {
		return model.DailyReport{}, fmt.Errorf("report repository list top products: %w", err)
	}

	return model.DailyReport{
		Date:        start,
		OrderCount:  stats.OrderCount,
		TotalAmount: model.RoundMoney(stats.TotalAmount),
		TopProducts: topProducts,
	}, nil
}
