package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotStore)(nil)

// SlotStore almacén de slots en memoria del proceso. Guarda y devuelve copias de los bytes.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotStore construye un almacén vacío.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

// Load implementa repository.SlotStore.
func (s *SlotStore) Load(_ context.Context, slot string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

// SaveAll implementa repository.SlotStore.
func (s *SlotStore) SaveAll(_ context.Context, slots map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, raw := range slots {
		s.slots[name] = append([]byte(nil), raw...)
	}
	return nil
}

// Slots implementa repository.SlotStore.
func (s *SlotStore) Slots(_ context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.slots))
	for name, raw := range s.slots {
		out[name] = append([]byte(nil), raw...)
	}
	return out, nil
}
