package sequence

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// MemoryCounter contador en memoria del proceso.
type MemoryCounter struct {
	mu    sync.Mutex
	marks map[Kind]int64
}

// NewMemoryCounter construye un contador vacío, opcionalmente con marcas iniciales.
func NewMemoryCounter(initial map[Kind]int64) *MemoryCounter {
	marks := make(map[Kind]int64, len(initial))
	for k, v := range initial {
		marks[k] = v
	}
	return &MemoryCounter{marks: marks}
}

// Next implementa Counter.
func (c *MemoryCounter) Next(_ context.Context, kind Kind, floor int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.marks[kind]
	if floor > n {
		n = floor
	}
	n++
	c.marks[kind] = n
	return n, nil
}

// Marks copia de las marcas altas actuales.
func (c *MemoryCounter) Marks() map[Kind]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Kind]int64, len(c.marks))
	for k, v := range c.marks {
		out[k] = v
	}
	return out
}

// SnowflakeCounter genera sufijos derivados del tiempo (snowflake): monotónicos por nodo y sin
// colisiones aunque se creen dos registros en el mismo milisegundo.
type SnowflakeCounter struct {
	node *snowflake.Node
}

// NewSnowflakeCounter construye el contador para el nodo dado (0-1023).
func NewSnowflakeCounter(nodeID int64) (*SnowflakeCounter, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeCounter{node: node}, nil
}

// Next implementa Counter. El sufijo nunca queda por debajo de floor.
func (c *SnowflakeCounter) Next(_ context.Context, _ Kind, floor int64) (int64, error) {
	n := c.node.Generate().Int64()
	if n <= floor {
		n = floor + 1
	}
	return n, nil
}
