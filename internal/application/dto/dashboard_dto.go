package dto

import "github.com/shopspring/decimal"

// StageCountResponse nombre de bons par étape de production.
type StageCountResponse struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// MonthRevenueResponse chiffre d'affaires facturé par mois.
type MonthRevenueResponse struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
}

// LowStockResponse compte de stock sous son seuil d'alerte.
type LowStockResponse struct {
	Kind          string          `json:"kind"` // catalog_item | resource | resource_variant
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	VariantName   string          `json:"variant_name,omitempty"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	AlertLevel    decimal.Decimal `json:"alert_level"`
}

// DashboardResponse statistiques agrégées du laboratoire.
type DashboardResponse struct {
	DeliveryNotesThisMonth int                    `json:"delivery_notes_this_month"`
	PendingProformas       int                    `json:"pending_proformas"`
	UnpaidInvoices         int                    `json:"unpaid_invoices"`
	RevenueThisMonth       decimal.Decimal        `json:"revenue_this_month"`
	StageCounts            []StageCountResponse   `json:"stage_counts"`
	RevenueByMonth         []MonthRevenueResponse `json:"revenue_by_month"`
	LowStock               []LowStockResponse     `json:"low_stock"`
}
