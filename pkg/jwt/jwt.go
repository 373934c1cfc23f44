package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y Email viajan en el token para que el middleware y el alcance de Sub
// (ítems asignados a su email) no requieran consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"` // "gc" | "sub"
	Email     string `json:"email"`
}

// Session datos extraídos de un token válido.
type Session struct {
	TokenID   string
	UserID    string
	CompanyID string
	Role      string
	Email     string
	ExpiresAt time.Time
}

// Generate genera un token JWT firmado. Cada token lleva un jti único para poder revocarlo en el sign-out.
func Generate(secret, issuer string, expMinutes int, s Session) (string, Session, error) {
	if secret == "" {
		return "", Session{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	s.TokenID = uuid.New().String()
	s.ExpiresAt = now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.TokenID,
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		UserID:    s.UserID,
		CompanyID: s.CompanyID,
		Role:      s.Role,
		Email:     s.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", Session{}, err
	}
	return signed, s, nil
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("claims inválidos")
	}
	s := Session{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
		Email:     claims.Email,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
