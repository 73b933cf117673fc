package slots

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// collection lista de registros guardada completa en un slot, en orden de inserción.
type collection[T any] struct {
	s     *session
	slot  string
	id    func(*T) string
	clone func(T) T
}

func (c collection[T]) copyOf(v T) *T {
	if c.clone != nil {
		v = c.clone(v)
	}
	return &v
}

func (c collection[T]) items(ctx context.Context) (*[]T, error) {
	return slotValue[[]T](ctx, c.s, c.slot)
}

func (c collection[T]) indexOf(list []T, id string) int {
	for i := range list {
		if c.id(&list[i]) == id {
			return i
		}
	}
	return -1
}

func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	list, err := c.items(ctx)
	if err != nil {
		return nil, err
	}
	if i := c.indexOf(*list, id); i >= 0 {
		return c.copyOf((*list)[i]), nil
	}
	return nil, nil
}

func (c collection[T]) find(ctx context.Context, match func(*T) bool) (*T, error) {
	list, err := c.items(ctx)
	if err != nil {
		return nil, err
	}
	for i := range *list {
		if match(&(*list)[i]) {
			return c.copyOf((*list)[i]), nil
		}
	}
	return nil, nil
}

func (c collection[T]) all(ctx context.Context) ([]*T, error) {
	list, err := c.items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(*list))
	for _, v := range *list {
		out = append(out, c.copyOf(v))
	}
	return out, nil
}

func (c collection[T]) insert(ctx context.Context, v *T) error {
	list, err := c.items(ctx)
	if err != nil {
		return err
	}
	if c.indexOf(*list, c.id(v)) >= 0 {
		return domain.ErrDuplicate
	}
	if err := c.s.touch(c.slot); err != nil {
		return err
	}
	*list = append(*list, *c.copyOf(*v))
	return nil
}

func (c collection[T]) replace(ctx context.Context, v *T) error {
	list, err := c.items(ctx)
	if err != nil {
		return err
	}
	i := c.indexOf(*list, c.id(v))
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := c.s.touch(c.slot); err != nil {
		return err
	}
	(*list)[i] = *c.copyOf(*v)
	return nil
}

func (c collection[T]) remove(ctx context.Context, id string) error {
	list, err := c.items(ctx)
	if err != nil {
		return err
	}
	i := c.indexOf(*list, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := c.s.touch(c.slot); err != nil {
		return err
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return nil
}

// setAll reemplaza la colección completa.
func (c collection[T]) setAll(ctx context.Context, items []*T) error {
	list, err := c.items(ctx)
	if err != nil {
		return err
	}
	if err := c.s.touch(c.slot); err != nil {
		return err
	}
	next := make([]T, 0, len(items))
	for _, v := range items {
		next = append(next, *c.copyOf(*v))
	}
	*list = next
	return nil
}
