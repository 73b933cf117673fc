package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotStore)(nil)

// SlotStore implementación del puerto SlotStore sobre la tabla app_slots.
type SlotStore struct {
	pool *pgxpool.Pool
}

// NewSlotStore construye el adaptador con el pool.
func NewSlotStore(pool *pgxpool.Pool) *SlotStore {
	return &SlotStore{pool: pool}
}

// Load obtiene el payload de un slot.
func (s *SlotStore) Load(ctx context.Context, slot string) ([]byte, bool, error) {
	return loadSlot(ctx, s.pool, slot)
}

func loadSlot(ctx context.Context, q Querier, slot string) ([]byte, bool, error) {
	var payload []byte
	err := q.QueryRow(ctx, `SELECT payload FROM app_slots WHERE slot = $1`, slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select slot %s: %w", slot, err)
	}
	return payload, true, nil
}

// SaveAll reemplaza los slots dentro de una sola transacción.
func (s *SlotStore) SaveAll(ctx context.Context, slots map[string][]byte) error {
	if len(slots) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsert = `
		INSERT INTO app_slots (slot, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (slot) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	batch := &pgx.Batch{}
	names := make([]string, 0, len(slots))
	for name, raw := range slots {
		batch.Queue(upsert, name, string(raw))
		names = append(names, name)
	}
	br := tx.SendBatch(ctx, batch)
	for _, name := range names {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("upsert slot %s: %w", name, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Slots devuelve todos los slots guardados.
func (s *SlotStore) Slots(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.pool.Query(ctx, `SELECT slot, payload FROM app_slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out[name] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return out, nil
}
