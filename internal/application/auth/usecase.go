package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/jwt"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// resetCodeTTL durée de validité d'un code de réinitialisation.
const resetCodeTTL = 15 * time.Minute

// CodeSender envoie le code de réinitialisation à l'utilisateur. L'envoi
// d'email vit en infrastructure ; le cas d'usage ne connaît que ce port.
type CodeSender interface {
	SendResetCode(labID, toEmail, toName, code string) error
}

// Config paramètres JWT du cas d'usage.
type Config struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// UseCase inscription, connexion et réinitialisation de mot de passe.
type UseCase struct {
	users  repository.UserRepository
	labs   repository.LabRepository
	sender CodeSender
	cfg    Config
	log    *logger.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(users repository.UserRepository, labs repository.LabRepository, sender CodeSender, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{users: users, labs: labs, sender: sender, cfg: cfg, log: log}
}

// Register crée un laboratoire et son premier utilisateur admin.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	existing, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hachage du mot de passe: %w", err)
	}

	now := time.Now()
	lab := &entity.Lab{
		ID:        uuid.New().String(),
		Name:      in.LabName,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.labs.Create(lab); err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		LabID:        lab.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("lab_id", lab.ID).Str("user_id", user.ID).Msg("laboratoire inscrit")
	return uc.issueToken(user)
}

// Login vérifie les identifiants et renvoie un jeton JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// CreateUser ajoute un utilisateur au laboratoire (réservé aux admins,
// contrôle fait par le middleware).
func (uc *UseCase) CreateUser(labID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByEmailAndLab(in.Email, labID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hachage du mot de passe: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		LabID:        labID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ForgotPassword génère un code à 6 chiffres, le stocke haché et l'envoie
// par email. Répond toujours sans erreur côté client pour ne pas révéler
// l'existence d'un compte.
func (uc *UseCase) ForgotPassword(in dto.ForgotPasswordRequest) error {
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", in.Email).Msg("réinitialisation demandée pour un email inconnu")
		return nil
	}

	code, err := sixDigitCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hachage du code: %w", err)
	}
	rc := &entity.PasswordResetCode{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(resetCodeTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.users.CreateResetCode(rc); err != nil {
		return err
	}

	if err := uc.sender.SendResetCode(user.LabID, user.Email, user.Name, code); err != nil {
		// L'échec d'envoi est tracé mais pas remonté : le code reste valable
		// et l'utilisateur peut redemander.
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("échec d'envoi du code de réinitialisation")
	}
	return nil
}

// ResetPassword consomme le code à 6 chiffres et remplace le mot de passe.
func (uc *UseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidResetCode
	}
	rc, err := uc.users.GetActiveResetCode(user.ID)
	if err != nil {
		return err
	}
	if rc == nil || rc.UsedAt != nil || time.Now().After(rc.ExpiresAt) {
		return domain.ErrInvalidResetCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rc.CodeHash), []byte(in.Code)); err != nil {
		return domain.ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hachage du mot de passe: %w", err)
	}
	if err := uc.users.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	if err := uc.users.MarkResetCodeUsed(rc.ID); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("mot de passe réinitialisé")
	return nil
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.LabID, user.Role, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("génération du jeton: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// sixDigitCode tire un code aléatoire entre 000000 et 999999.
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("génération du code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		LabID:     u.LabID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
