package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// statsTTL durée de vie du cache des statistiques. Les agrégations croisent
// plusieurs tables ; une minute de retard est acceptable sur un tableau
// de bord.
const statsTTL = time.Minute

// revenueMonths profondeur de l'historique de chiffre d'affaires.
const revenueMonths = 12

// Cache port de cache lecture-première. Get renvoie (nil, nil) si la clé
// est absente ; une erreur de cache ne doit jamais faire échouer la requête.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// UseCase statistiques agrégées du laboratoire, servies depuis le cache
// quand il est chaud.
type UseCase struct {
	repo  repository.DashboardRepository
	cache Cache
	log   *logger.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.DashboardRepository, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, cache: cache, log: log}
}

func statsKey(labID string) string { return fmt.Sprintf("dashboard:%s:stats", labID) }

// Stats renvoie le tableau de bord, depuis le cache si possible.
func (uc *UseCase) Stats(ctx context.Context, labID string) (*dto.DashboardResponse, error) {
	key := statsKey(labID)
	if raw, err := uc.cache.Get(ctx, key); err != nil {
		uc.log.Warn().Err(err).Msg("cache indisponible, calcul direct")
	} else if raw != nil {
		var cached dto.DashboardResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	resp, err := uc.compute(labID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(resp); err == nil {
		if err := uc.cache.Set(ctx, key, raw, statsTTL); err != nil {
			uc.log.Warn().Err(err).Msg("écriture du cache impossible")
		}
	}
	return resp, nil
}

// Invalidate purge le cache du laboratoire. Appelé après les écritures qui
// changent les agrégations (bons, proformas, factures, stock).
func (uc *UseCase) Invalidate(ctx context.Context, labID string) {
	if err := uc.cache.DeletePrefix(ctx, fmt.Sprintf("dashboard:%s:", labID)); err != nil {
		uc.log.Warn().Err(err).Str("lab_id", labID).Msg("invalidation du cache impossible")
	}
}

func (uc *UseCase) compute(labID string) (*dto.DashboardResponse, error) {
	counters, err := uc.repo.Counters(labID)
	if err != nil {
		return nil, err
	}
	stages, err := uc.repo.CountNotesByStage(labID)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.repo.MonthlyRevenue(labID, revenueMonths)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.LowStock(labID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		DeliveryNotesThisMonth: counters.DeliveryNotesThisMonth,
		PendingProformas:       counters.PendingProformas,
		UnpaidInvoices:         counters.UnpaidInvoices,
		RevenueThisMonth:       counters.RevenueThisMonth,
		StageCounts:            make([]dto.StageCountResponse, 0, len(stages)),
		RevenueByMonth:         make([]dto.MonthRevenueResponse, 0, len(revenue)),
		LowStock:               make([]dto.LowStockResponse, 0, len(lowStock)),
	}
	for _, s := range stages {
		resp.StageCounts = append(resp.StageCounts, dto.StageCountResponse{Stage: s.Stage, Count: s.Count})
	}
	for _, m := range revenue {
		resp.RevenueByMonth = append(resp.RevenueByMonth, dto.MonthRevenueResponse{
			Month:   fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			Revenue: m.Revenue,
		})
	}
	for _, e := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.LowStockResponse{
			Kind:          e.Kind,
			ID:            e.ID,
			Name:          e.Name,
			VariantName:   e.VariantName,
			StockQuantity: e.Quantity,
			AlertLevel:    e.AlertLevel,
		})
	}
	return resp, nil
}
