package work

import (
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// UseCase tableau Kanban de production : les bons de livraison non terminés
// groupés par étape.
type UseCase struct {
	notes    repository.DeliveryNoteRepository
	dentists repository.DentistRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(notes repository.DeliveryNoteRepository, dentists repository.DentistRepository) *UseCase {
	return &UseCase{notes: notes, dentists: dentists}
}

// ListStages renvoie les étapes du flux de production.
func (uc *UseCase) ListStages() []dto.WorkStageResponse {
	stages := Stages()
	out := make([]dto.WorkStageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, toStageResponse(s))
	}
	return out
}

// Board construit le tableau complet : une colonne par étape non terminale,
// les cartes triées par la base (date de création).
func (uc *UseCase) Board(labID string) (*dto.WorkBoardResponse, error) {
	dentistNames, err := uc.dentistNames(labID)
	if err != nil {
		return nil, err
	}

	board := &dto.WorkBoardResponse{}
	for _, stage := range Stages() {
		if stage.Terminal {
			continue
		}
		notes, err := uc.notes.List(labID, repository.DeliveryNoteFilter{Stage: stage.ID, Limit: 200})
		if err != nil {
			return nil, err
		}
		col := dto.WorkBoardColumn{Stage: toStageResponse(stage), Cards: []dto.WorkCardResponse{}}
		for _, n := range notes {
			col.Cards = append(col.Cards, dto.WorkCardResponse{
				DeliveryNoteID: n.ID,
				DeliveryNumber: n.DeliveryNumber,
				DentistID:      n.DentistID,
				DentistName:    dentistNames[n.DentistID],
				PatientName:    n.PatientName,
				Stage:          n.Stage,
				Progress:       Progress(n.Stage),
				Date:           n.Date,
			})
		}
		board.Columns = append(board.Columns, col)
	}
	return board, nil
}

// MoveStage déplace un bon vers une autre étape du flux.
func (uc *UseCase) MoveStage(labID, noteID, stageID string) error {
	if StageByID(stageID) == nil {
		return domain.ErrInvalidInput
	}
	n, err := uc.notes.GetByID(noteID)
	if err != nil {
		return err
	}
	if n == nil || n.LabID != labID {
		return domain.ErrNotFound
	}
	return uc.notes.UpdateStage(noteID, stageID)
}

// dentistNames index id -> nom pour remplir les cartes sans une requête
// par carte.
func (uc *UseCase) dentistNames(labID string) (map[string]string, error) {
	dentists, err := uc.dentists.ListByLab(labID, 1000, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(dentists))
	for _, d := range dentists {
		names[d.ID] = d.Name
	}
	return names, nil
}

func toStageResponse(s entity.WorkStage) dto.WorkStageResponse {
	return dto.WorkStageResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		OrderIndex:  s.OrderIndex,
		Weight:      s.Weight,
		Color:       s.Color,
		Terminal:    s.Terminal,
	}
}
