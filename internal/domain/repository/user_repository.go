package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sigep-gc/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y le asigna el ID generado.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	// ResetPassword cambia el hash y limpia el token solo si token existe y no expiró en now.
	// Devuelve false si ningún usuario coincide.
	ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)
}
