// Package auth casos de uso de autenticación: registro de equipo y login.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
	"github.com/jhoicas/denta-stock-api/pkg/jwt"
)

// PlanTrial nombre del plan asignado a los equipos recién registrados.
const PlanTrial = "trial"

// trialDays días de prueba cuando el plan no define duración propia.
const trialDays = 14

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, teamRepo repository.TeamRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, teamRepo: teamRepo, jwtCfg: jwtCfg}
}

// Register crea el equipo en plan trial y su primer usuario con rol admin.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	in.TeamName = strings.TrimSpace(in.TeamName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.TeamName == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	plan, err := uc.teamRepo.GetPlanByName(ctx, PlanTrial)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound // plan trial no sembrado
	}
	days := plan.DurationDays
	if days <= 0 {
		days = trialDays
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expire := now.AddDate(0, 0, days)
	userID := uuid.New().String()
	team := &entity.Team{
		ID:         uuid.New().String(),
		Name:       in.TeamName,
		Currency:   strings.TrimSpace(in.Currency),
		PlanID:     plan.ID,
		IsTrial:    true,
		ExpireDate: &expire,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = in.Email
	}
	user := &entity.User{
		ID:           userID,
		TeamID:       team.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TeamID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TeamID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TeamID:    u.TeamID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
