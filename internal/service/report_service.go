package service

import (
	"context"

	"backoffice/internal/models"
	"backoffice/internal/report"
	"backoffice/internal/util"
)

// OrderSource provides the current ledger snapshot
type OrderSource interface {
	List() []models.Order
}

// ReportService computes chart data from the current ledger
type ReportService struct {
	orders OrderSource
	kpis   report.KPIInputs
	colors map[models.OrderStatus]string
}

// NewReportService creates a new report service
func NewReportService(orders OrderSource, kpis report.KPIInputs) *ReportService {
	return &ReportService{
		orders: orders,
		kpis:   kpis,
		colors: report.DefaultStatusColors,
	}
}

// Overview is the reports page: revenue per day and orders per status
type Overview struct {
	Revenue            []report.RevenuePoint `json:"revenue"`
	StatusDistribution []report.StatusSlice  `json:"status_distribution"`
}

// Dashboard is the landing page: KPI cards and the weekly comparison
type Dashboard struct {
	KPIs   []report.KPICard    `json:"kpis"`
	Weekly []report.SalesPoint `json:"weekly"`
}

// Overview aggregates the current orders
func (s *ReportService) Overview(ctx context.Context) Overview {
	_, span := util.StartSpan(ctx, "ReportService.Overview")
	defer span.End()

	orders := s.orders.List()
	return Overview{
		Revenue:            report.RevenueByDate(orders),
		StatusDistribution: report.StatusDistribution(orders, s.colors),
	}
}

// Dashboard returns the configured KPI cards
func (s *ReportService) Dashboard(ctx context.Context) Dashboard {
	_, span := util.StartSpan(ctx, "ReportService.Dashboard")
	defer span.End()

	return Dashboard{
		KPIs:   report.KPICards(s.kpis),
		Weekly: report.WeeklyComparison(),
	}
}
