package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity datos del usuario que viajan en el token de sesión.
type Identity struct {
	UserID       int64
	RoleID       int
	Departamento string
	Nombre       string
}

// Claims incluye los claims estándar JWT más los campos que consume el frontend.
// Se añade role_id para que el middleware de roles pueda decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID       int64  `json:"id"`
	RoleID       int    `json:"role_id"` // 1 = admin, 2 = colaborador
	Departamento string `json:"departamento"`
	Nombre       string `json:"nombre"`
}

// Generate genera un token JWT firmado (HS256) con la identidad del usuario.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       id.UserID,
		RoleID:       id.RoleID,
		Departamento: id.Departamento,
		Nombre:       id.Nombre,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae id.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	userID := claims.UserID
	if userID == 0 && claims.Subject != "" {
		// tokens emitidos solo con "sub"
		userID, _ = strconv.ParseInt(claims.Subject, 10, 64)
	}
	if userID == 0 {
		return nil, fmt.Errorf("token sin id")
	}
	return &Identity{
		UserID:       userID,
		RoleID:       claims.RoleID,
		Departamento: claims.Departamento,
		Nombre:       claims.Nombre,
	}, nil
}
