package dto

import "time"

// WorkStageResponse étape de production du tableau Kanban.
type WorkStageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
	Weight      int    `json:"weight"`
	Color       string `json:"color"`
	Terminal    bool   `json:"terminal"`
}

// WorkCardResponse carte du tableau : un bon de livraison en production.
type WorkCardResponse struct {
	DeliveryNoteID string    `json:"delivery_note_id"`
	DeliveryNumber string    `json:"delivery_number"`
	DentistID      string    `json:"dentist_id"`
	DentistName    string    `json:"dentist_name"`
	PatientName    string    `json:"patient_name"`
	Stage          string    `json:"stage"`
	Progress       int       `json:"progress"` // avancement cumulé en %
	Date           time.Time `json:"date"`
}

// WorkBoardColumn colonne du tableau : une étape et ses cartes.
type WorkBoardColumn struct {
	Stage WorkStageResponse  `json:"stage"`
	Cards []WorkCardResponse `json:"cards"`
}

// WorkBoardResponse tableau Kanban complet.
type WorkBoardResponse struct {
	Columns []WorkBoardColumn `json:"columns"`
}

// MoveStageRequest déplacement d'une carte vers une autre étape.
type MoveStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}
