package entity

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jhoicas/punchlist-api/internal/domain"
)

// NormalizeEmail valida el formato y devuelve el email en minúsculas y sin espacios.
// Los emails se comparan siempre normalizados (perfiles, asignaciones, equipo).
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email inválido %q", domain.ErrInvalidInput, raw)
	}
	return email, nil
}
