// Package slots implementa la unidad de trabajo sobre un repository.SlotStore: los repositorios
// tipados leen cada slot una sola vez por sesión, trabajan en memoria y al confirmar se escriben
// solo los slots modificados con un único SaveAll.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var errReadOnly = errors.New("sesión de solo lectura")

type session struct {
	store    repository.SlotStore
	readOnly bool
	cache    map[string]any
	dirty    map[string]bool
}

func newSession(store repository.SlotStore, readOnly bool) *session {
	return &session{
		store:    store,
		readOnly: readOnly,
		cache:    make(map[string]any),
		dirty:    make(map[string]bool),
	}
}

// slotValue devuelve el valor decodificado del slot, cacheado por sesión.
func slotValue[T any](ctx context.Context, s *session, slot string) (*T, error) {
	if v, ok := s.cache[slot]; ok {
		return v.(*T), nil
	}
	var zero T
	val, err := repository.LoadSlot(ctx, s.store, slot, zero)
	if err != nil {
		return nil, err
	}
	p := &val
	s.cache[slot] = p
	return p, nil
}

func (s *session) touch(slot string) error {
	if s.readOnly {
		return fmt.Errorf("slot %s: %w", slot, errReadOnly)
	}
	s.dirty[slot] = true
	return nil
}

func (s *session) commit(ctx context.Context) error {
	if len(s.dirty) == 0 {
		return nil
	}
	out := make(map[string][]byte, len(s.dirty))
	for slot := range s.dirty {
		raw, err := json.Marshal(s.cache[slot])
		if err != nil {
			return fmt.Errorf("encode slot %s: %w", slot, err)
		}
		out[slot] = raw
	}
	if err := s.store.SaveAll(ctx, out); err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	return nil
}
