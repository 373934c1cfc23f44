// Package localstore guarda en un archivo sqlite local el estado que debe sobrevivir a una
// caída de la base principal: el último snapshot de cada lista y los tokens revocados.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/punchlist-api/internal/application/auth"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

var (
	_ punch.SnapshotCache = (*Store)(nil)
	_ auth.TokenRevoker   = (*Store)(nil)
)

// Store adaptador sqlite (modernc, sin cgo).
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open abre (o crea) el archivo y aplica el esquema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS item_snapshots (
			cache_key TEXT PRIMARY KEY,
			payload   TEXT NOT NULL,
			saved_at  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS revoked_tokens (
			token_id   TEXT PRIMARY KEY,
			expires_at INTEGER NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot reemplaza el snapshot de la clave.
func (s *Store) SaveSnapshot(ctx context.Context, key string, items []*entity.PunchItem) error {
	if items == nil {
		items = []*entity.PunchItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO item_snapshots (cache_key, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		key, string(payload), s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot devuelve el último snapshot de la clave; ok=false si no hay.
func (s *Store) LoadSnapshot(ctx context.Context, key string) ([]*entity.PunchItem, time.Time, bool, error) {
	var payload string
	var savedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, saved_at FROM item_snapshots WHERE cache_key = ?`, key,
	).Scan(&payload, &savedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var items []*entity.PunchItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return items, time.UnixMilli(savedAt), true, nil
}

// Revoke marca el token como revocado hasta su expiración.
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (token_id, expires_at) VALUES (?, ?)
		ON CONFLICT(token_id) DO UPDATE SET expires_at = excluded.expires_at`,
		tokenID, expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked informa si el token fue revocado y aún no expiró.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM revoked_tokens WHERE token_id = ? AND expires_at > ?`,
		tokenID, s.now().Unix(),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// PurgeExpired borra las revocaciones de tokens ya expirados.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
