package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SalesMetrics tracks sale writes and the revenue they booked.
type SalesMetrics struct {
	operations *prometheus.CounterVec
	revenue    *prometheus.CounterVec
}

// NewSalesMetrics registers the sales metrics on the provided registerer.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendas_operations_total",
		Help: "Sale writes, by operation.",
	}, []string{"operation"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendas_valor_final_total",
		Help: "Sum of valor_final booked by new sales, by payment method.",
	}, []string{"forma_pagamento"})
	reg.MustRegister(operations, revenue)
	return &SalesMetrics{
		operations: operations,
		revenue:    revenue,
	}
}

// IncOperation counts a create, update or delete.
func (s *SalesMetrics) IncOperation(operation string) {
	if s == nil || s.operations == nil {
		return
	}
	s.operations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// AddRevenue adds a new sale's final value. Negative values are ignored since
// counters only go up.
func (s *SalesMetrics) AddRevenue(paymentMethod string, value decimal.Decimal) {
	if s == nil || s.revenue == nil || value.IsNegative() {
		return
	}
	s.revenue.WithLabelValues(normalizeLabel(paymentMethod)).Add(value.InexactFloat64())
}
