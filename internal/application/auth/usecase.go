package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/pedido"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
	"github.com/jhoicas/sigep-gc/pkg/jwt"
)

const defaultBcryptCost = 10

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ResetConfig configuración del flujo de recuperación de contraseña.
type ResetConfig struct {
	FrontendURL string
	TTL         time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y recuperación de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
	resetCfg ResetConfig

	bcryptCost int
	now        func() time.Time
	newToken   func() (string, error)
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig, resetCfg ResetConfig) *AuthUseCase {
	if resetCfg.TTL <= 0 {
		resetCfg.TTL = 15 * time.Minute
	}
	return &AuthUseCase{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtCfg:     jwtCfg,
		resetCfg:   resetCfg,
		bcryptCost: defaultBcryptCost,
		now:        time.Now,
		newToken:   randomToken,
	}
}

// RegisterUser valida el departamento, hashea el password con bcrypt, persiste y emite la sesión.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	departamento, err := pedido.ParseDepartamento(in.Departamento)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := in.RoleID
	if role != entity.RoleAdmin && role != entity.RoleColaborador {
		role = entity.RoleColaborador
	}
	user := &entity.User{
		Nombre:       strings.TrimSpace(in.Nombre),
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role,
		Departamento: departamento,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password y genera el token de sesión.
// ErrUserNotFound si el email no existe, ErrUnauthorized si el password no coincide.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ForgotPassword emite un token aleatorio de un solo uso, lo guarda con su vencimiento
// y envía el enlace de recuperación por correo.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, err := uc.newToken()
	if err != nil {
		return fmt.Errorf("generar token de recuperación: %w", err)
	}
	expires := uc.now().Add(uc.resetCfg.TTL)
	if err := uc.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}
	html, err := renderResetEmail(resetURL(uc.resetCfg.FrontendURL, token), int(uc.resetCfg.TTL/time.Minute))
	if err != nil {
		return err
	}
	if err := uc.mailer.Send(ctx, user.Email, resetSubject, html); err != nil {
		return fmt.Errorf("no se pudo enviar el correo de recuperación: %w", err)
	}
	return nil
}

// ResetPassword canjea el token: reemplaza el hash y limpia el token en una sola sentencia.
// ErrResetTokenInvalido si el token no existe o ya expiró.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := uc.userRepo.ResetPassword(ctx, token, string(hash), uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrResetTokenInvalido
	}
	return nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:       user.ID,
		RoleID:       user.RoleID,
		Departamento: user.Departamento,
		Nombre:       user.Nombre,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: *toUserResponse(user), Token: token}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		RoleID:       u.RoleID,
		Departamento: u.Departamento,
	}
}
