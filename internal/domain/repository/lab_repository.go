package repository

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// LabRepository port de persistance des laboratoires (tenants).
type LabRepository interface {
	Create(lab *entity.Lab) error
	GetByID(id string) (*entity.Lab, error)
	Update(lab *entity.Lab) error
}

// SettingsRepository port pour la configuration SMTP persistée en base
// (écran admin ; les fonctions d'envoi d'email la lisent à chaque envoi).
type SettingsRepository interface {
	GetSMTPSettings(labID string) (*entity.SMTPSettings, error)
	UpsertSMTPSettings(s *entity.SMTPSettings) error
}
