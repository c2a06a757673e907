package repository

import (
	"time"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

// DeliveryNoteFilter critères de listing des bons de livraison.
type DeliveryNoteFilter struct {
	DentistID string
	Stage     string
	From      *time.Time
	To        *time.Time
	Unbilled  bool // uniquement les bons non rattachés à une proforma
	Limit     int
	Offset    int
}

// DeliveryNoteRepository port de persistance des bons de livraison.
// NextNumber appelle la fonction SQL generate_next_delivery_number (séquence
// atomique côté base, format BL-YYYY-NNNN).
type DeliveryNoteRepository interface {
	Create(n *entity.DeliveryNote) error
	GetByID(id string) (*entity.DeliveryNote, error)
	List(labID string, f DeliveryNoteFilter) ([]*entity.DeliveryNote, error)
	Update(n *entity.DeliveryNote) error
	UpdateStage(id, stage string) error
	SetProformaID(id, proformaID string) error
	Delete(id string) error
	NextNumber(labID string) (string, error)
}
