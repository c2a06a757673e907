// Package settings paramètres du laboratoire : coordonnées (qui alimentent
// les PDF) et configuration SMTP.
package settings

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// UseCase lecture et mise à jour des paramètres du laboratoire.
type UseCase struct {
	labs     repository.LabRepository
	settings repository.SettingsRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(labs repository.LabRepository, settings repository.SettingsRepository) *UseCase {
	return &UseCase{labs: labs, settings: settings}
}

// GetLab renvoie les coordonnées du laboratoire.
func (uc *UseCase) GetLab(labID string) (*dto.LabResponse, error) {
	lab, err := uc.labs.GetByID(labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	return toLabResponse(lab), nil
}

// UpdateLab met à jour les coordonnées. Seuls les champs non nil changent.
func (uc *UseCase) UpdateLab(labID string, in dto.UpdateLabRequest) (*dto.LabResponse, error) {
	lab, err := uc.labs.GetByID(labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		lab.Name = *in.Name
	}
	if in.Address != nil {
		lab.Address = *in.Address
	}
	if in.Phone != nil {
		lab.Phone = *in.Phone
	}
	if in.Email != nil {
		lab.Email = *in.Email
	}
	if in.LogoURL != nil {
		lab.LogoURL = *in.LogoURL
	}
	if in.SIRET != nil {
		lab.SIRET = *in.SIRET
	}
	if in.RCS != nil {
		lab.RCS = *in.RCS
	}
	if in.IBAN != nil {
		lab.IBAN = *in.IBAN
	}
	if in.BIC != nil {
		lab.BIC = *in.BIC
	}
	if in.ComplianceText != nil {
		lab.ComplianceText = *in.ComplianceText
	}
	lab.UpdatedAt = time.Now()
	if err := uc.labs.Update(lab); err != nil {
		return nil, err
	}
	return toLabResponse(lab), nil
}

// GetSMTP renvoie la configuration SMTP, sans le mot de passe. (nil, nil)
// si elle n'a jamais été configurée.
func (uc *UseCase) GetSMTP(labID string) (*dto.SMTPSettingsResponse, error) {
	s, err := uc.settings.GetSMTPSettings(labID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSMTPResponse(s), nil
}

// UpdateSMTP remplace la configuration SMTP du laboratoire. Un mot de passe
// vide conserve l'ancien.
func (uc *UseCase) UpdateSMTP(labID string, in dto.UpdateSMTPSettingsRequest) (*dto.SMTPSettingsResponse, error) {
	if in.Host == "" || in.Port <= 0 || in.Port > 65535 || in.FromEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.settings.GetSMTPSettings(labID)
	if err != nil {
		return nil, err
	}
	s := &entity.SMTPSettings{
		ID:        uuid.New().String(),
		LabID:     labID,
		Host:      in.Host,
		Port:      in.Port,
		Secure:    in.Secure,
		Username:  in.Username,
		Password:  in.Password,
		FromEmail: in.FromEmail,
		FromName:  in.FromName,
		IsActive:  in.IsActive,
		UpdatedAt: time.Now(),
	}
	if existing != nil {
		s.ID = existing.ID
		if s.Password == "" {
			s.Password = existing.Password
		}
	}
	if err := uc.settings.UpsertSMTPSettings(s); err != nil {
		return nil, err
	}
	return toSMTPResponse(s), nil
}

func toLabResponse(lab *entity.Lab) *dto.LabResponse {
	return &dto.LabResponse{
		ID:             lab.ID,
		Name:           lab.Name,
		Address:        lab.Address,
		Phone:          lab.Phone,
		Email:          lab.Email,
		LogoURL:        lab.LogoURL,
		SIRET:          lab.SIRET,
		RCS:            lab.RCS,
		IBAN:           lab.IBAN,
		BIC:            lab.BIC,
		ComplianceText: lab.ComplianceText,
		CreatedAt:      lab.CreatedAt,
		UpdatedAt:      lab.UpdatedAt,
	}
}

func toSMTPResponse(s *entity.SMTPSettings) *dto.SMTPSettingsResponse {
	return &dto.SMTPSettingsResponse{
		Host:      s.Host,
		Port:      s.Port,
		Secure:    s.Secure,
		Username:  s.Username,
		FromEmail: s.FromEmail,
		FromName:  s.FromName,
		IsActive:  s.IsActive,
		UpdatedAt: s.UpdatedAt,
	}
}
