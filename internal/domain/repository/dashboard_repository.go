package repository

import "github.com/shopspring/decimal"

// StageCount nombre de bons de livraison par étape de production.
type StageCount struct {
	Stage string
	Count int
}

// MonthRevenue chiffre d'affaires facturé d'un mois.
type MonthRevenue struct {
	Year    int
	Month   int
	Revenue decimal.Decimal
}

// LowStockEntry article, ressource ou variante sous son seuil d'alerte.
type LowStockEntry struct {
	Kind        string // catalog_item | resource | resource_variant
	ID          string
	Name        string
	VariantName string
	Quantity    decimal.Decimal
	AlertLevel  decimal.Decimal
}

// Counters compteurs de tête du tableau de bord.
type Counters struct {
	DeliveryNotesThisMonth int
	PendingProformas       int
	UnpaidInvoices         int
	RevenueThisMonth       decimal.Decimal
}

// DashboardRepository port des agrégations du tableau de bord.
type DashboardRepository interface {
	Counters(labID string) (*Counters, error)
	CountNotesByStage(labID string) ([]StageCount, error)
	MonthlyRevenue(labID string, months int) ([]MonthRevenue, error)
	LowStock(labID string) ([]LowStockEntry, error)
}
