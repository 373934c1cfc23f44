// Package storage adaptadores de almacenamiento de objetos para las fotos de los ítems.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
)

var _ punch.PhotoStorage = (*LocalStorage)(nil)

// LocalStorage guarda los objetos en disco; Fiber los sirve como estáticos bajo PublicBaseURL.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage crea el directorio raíz si no existe.
func NewLocalStorage(dir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Dir directorio raíz.
func (s *LocalStorage) Dir() string { return s.dir }

// Upload escribe el objeto. La ruta no puede salir del directorio raíz.
func (s *LocalStorage) Upload(_ context.Context, objectPath, _ string, data []byte) (string, error) {
	handle, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, filepath.FromSlash(handle))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return handle, nil
}

// PublicURL URL pública del objeto.
func (s *LocalStorage) PublicURL(handle string) string {
	return s.baseURL + "/" + handle
}

func cleanObjectPath(p string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(p, `\`, "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: ruta de objeto inválida %q", domain.ErrInvalidInput, p)
	}
	return clean, nil
}
