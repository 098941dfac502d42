package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/pkg/jwt"
)

type fakeUserRepo struct {
	users  []*entity.User
	nextID int64
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID int64, token string, expires time.Time) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.ResetToken = &token
			u.ResetExpires = &expires
		}
	}
	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, token, hash string, now time.Time) (bool, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetExpires != nil && u.ResetExpires.After(now) {
			u.PasswordHash = hash
			u.ResetToken = nil
			u.ResetExpires = nil
			return true, nil
		}
	}
	return false, nil
}

type fakeMailer struct {
	to, subject, html string
	err               error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.to, m.subject, m.html = to, subject, html
	return m.err
}

const testSecret = "secreto-de-prueba"

func newTestUseCase(t *testing.T) (*AuthUseCase, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	repo := &fakeUserRepo{}
	mailer := &fakeMailer{}
	uc := NewAuthUseCase(repo, mailer,
		JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "sigep-gc"},
		ResetConfig{FrontendURL: "https://front.example.com", TTL: 15 * time.Minute},
	)
	uc.bcryptCost = bcrypt.MinCost
	return uc, repo, mailer
}

func registrar(t *testing.T, uc *AuthUseCase, email, depto string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Nombre: "Ana", Email: email, Password: "secreta", Departamento: depto,
	})
	require.NoError(t, err)
	return out
}

func TestRegisterUser_Ok(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)

	out := registrar(t, uc, "ana@x.com", "Ventas")

	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "ventas", out.User.Departamento, "el departamento se guarda en minúsculas")
	assert.Equal(t, entity.RoleColaborador, out.User.RoleID)
	assert.NotEqual(t, "secreta", repo.users[0].PasswordHash)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.UserID)
	assert.Equal(t, "ventas", id.Departamento)
}

func TestRegisterUser_RolAdmin(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Nombre: "Root", Email: "root@x.com", Password: "x", RoleID: entity.RoleAdmin, Departamento: "produccion",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.RoleID)

	out, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Nombre: "Otro", Email: "otro@x.com", Password: "x", RoleID: 9, Departamento: "produccion",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleColaborador, out.User.RoleID, "rol desconocido cae a colaborador")
}

func TestRegisterUser_Errores(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	registrar(t, uc, "ana@x.com", "ventas")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Nombre: "Ana", Email: "ana@x.com", Password: "x", Departamento: "ventas",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Nombre: "Ana", Email: "nuevo@x.com", Password: "x", Departamento: "logistica",
	})
	assert.ErrorIs(t, err, domain.ErrDepartamentoInvalido)
	assert.Len(t, repo.users, 1)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	registrar(t, uc, "ana@x.com", "contabilidad")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", out.User.Email)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMe(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	registrar(t, uc, "ana@x.com", "ventas")

	me, err := uc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Nombre)

	_, err = uc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestForgotPassword_EnviaEnlace(t *testing.T) {
	uc, repo, mailer := newTestUseCase(t)
	uc.newToken = func() (string, error) { return "abc123", nil }
	registrar(t, uc, "ana@x.com", "ventas")

	require.NoError(t, uc.ForgotPassword(context.Background(), "ana@x.com"))

	assert.Equal(t, "ana@x.com", mailer.to)
	assert.Equal(t, resetSubject, mailer.subject)
	assert.Contains(t, mailer.html, "https://front.example.com/reset-password.html?token=abc123")
	assert.Contains(t, mailer.html, "15 minutos")
	require.NotNil(t, repo.users[0].ResetToken)
	assert.Equal(t, "abc123", *repo.users[0].ResetToken)
}

func TestForgotPassword_Errores(t *testing.T) {
	uc, _, mailer := newTestUseCase(t)
	assert.ErrorIs(t, uc.ForgotPassword(context.Background(), "nadie@x.com"), domain.ErrUserNotFound)

	registrar(t, uc, "ana@x.com", "ventas")
	mailer.err = errors.New("smtp caído")
	err := uc.ForgotPassword(context.Background(), "ana@x.com")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "smtp caído"))
}

func TestResetPassword(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	uc.newToken = func() (string, error) { return "tok", nil }
	registrar(t, uc, "ana@x.com", "ventas")
	require.NoError(t, uc.ForgotPassword(context.Background(), "ana@x.com"))

	require.NoError(t, uc.ResetPassword(context.Background(), "tok", "nueva"))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "nueva"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.ResetPassword(context.Background(), "tok", "otra"), domain.ErrResetTokenInvalido, "el token es de un solo uso")
}

func TestResetPassword_Expirado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	uc.newToken = func() (string, error) { return "tok", nil }
	registrar(t, uc, "ana@x.com", "ventas")
	require.NoError(t, uc.ForgotPassword(context.Background(), "ana@x.com"))

	now = now.Add(16 * time.Minute)
	assert.ErrorIs(t, uc.ResetPassword(context.Background(), "tok", "nueva"), domain.ErrResetTokenInvalido)
}
