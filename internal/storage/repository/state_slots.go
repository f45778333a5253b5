package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// UpsertSlot сохраняет значение слота сессии, перезаписывая предыдущее.
func (s *Storage) UpsertSlot(ctx context.Context, sessionID, slot string, value []byte, expiresAt time.Time) error {
	const op = "storage.UpsertSlot"

	query := `INSERT INTO state_slots (session_id, slot, value, expires_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (session_id, slot) DO UPDATE
			  SET value = EXCLUDED.value,
			      expires_at = EXCLUDED.expires_at,
			      updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, sessionID, slot, value, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSlot возвращает значение слота. Для отсутствующих и истёкших слотов
// возвращается state.ErrNotFound.
func (s *Storage) GetSlot(ctx context.Context, sessionID, slot string) ([]byte, error) {
	const op = "storage.GetSlot"

	query := `SELECT value
			  FROM state_slots
			  WHERE session_id = $1 AND slot = $2 AND expires_at > now()`
	var value []byte
	err := s.DB.QueryRowContext(ctx, query, sessionID, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// DeleteSlot удаляет слот сессии. Удаление отсутствующего слота не считается ошибкой.
func (s *Storage) DeleteSlot(ctx context.Context, sessionID, slot string) error {
	const op = "storage.DeleteSlot"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM state_slots WHERE session_id = $1 AND slot = $2`,
		sessionID, slot); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PurgeExpired удаляет все истёкшие слоты и возвращает их количество.
func (s *Storage) PurgeExpired(ctx context.Context) (int64, error) {
	const op = "storage.PurgeExpired"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM state_slots WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CountSessions возвращает число сессий с хотя бы одним живым слотом.
func (s *Storage) CountSessions(ctx context.Context) (int, error) {
	const op = "storage.CountSessions"

	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM state_slots WHERE expires_at > now()`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
