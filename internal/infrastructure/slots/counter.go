package slots

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
)

var _ sequence.Counter = (*slotCounter)(nil)

// slotCounter marcas altas por tipo en el slot "sequences". Se confirma junto con los
// registros que consumen el número.
type slotCounter struct{ s *session }

func (c *slotCounter) Next(ctx context.Context, kind sequence.Kind, floor int64) (int64, error) {
	p, err := slotValue[map[sequence.Kind]int64](ctx, c.s, repository.SlotSequences)
	if err != nil {
		return 0, err
	}
	if err := c.s.touch(repository.SlotSequences); err != nil {
		return 0, err
	}
	if *p == nil {
		*p = make(map[sequence.Kind]int64)
	}
	n := (*p)[kind]
	if floor > n {
		n = floor
	}
	n++
	(*p)[kind] = n
	return n, nil
}
