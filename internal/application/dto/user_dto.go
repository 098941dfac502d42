package dto

// RegisterRequest entrada para registro: el admin puede enviar rol y departamento.
type RegisterRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	RoleID       int    `json:"role_id"`
	Departamento string `json:"departamento"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest solicitud de correo de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest canje del token de recuperación.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password ni token de recuperación).
type UserResponse struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	Email        string `json:"email"`
	RoleID       int    `json:"role_id"`
	Departamento string `json:"departamento"`
}

// AuthResponse salida de login y registro; el token viaja en la cookie.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"-"`
}

// LogoutResponse salida de logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}
