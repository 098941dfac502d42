package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nombre, email, password_hash, role_id, departamento, reset_token, reset_expires`

// UserRepo implementación del puerto UserRepository sobre la tabla usuarios.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y asigna el ID generado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (nombre, email, password_hash, role_id, departamento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		user.Nombre, user.Email, user.PasswordHash, user.RoleID, user.Departamento,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// SetResetToken guarda el token de recuperación y su vencimiento.
func (r *UserRepo) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE usuarios SET reset_token = $1, reset_expires = $2 WHERE id = $3`,
		token, expires, userID,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetPassword canjea el token en una sola sentencia: dos canjes concurrentes no pueden ganar ambos.
func (r *UserRepo) ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE usuarios
		SET password_hash = $1, reset_token = NULL, reset_expires = NULL
		WHERE reset_token = $2 AND reset_expires > $3`,
		passwordHash, token, now,
	)
	if err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.RoleID, &u.Departamento,
		&u.ResetToken, &u.ResetExpires,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
