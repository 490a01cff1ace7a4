// Package memory keeps work orders, stock, reservations and the audit trail
// in process memory. It backs the service when no database is configured and
// the application tests.
//
// Writes made inside a unit of work are staged and applied under the store
// lock at Commit, all or nothing. Reads always see committed state.
package memory

import (
	"sync"

	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

type state struct {
	workOrders   map[string]*workorder.WorkOrder
	stock        map[inventory.StockKey]*inventory.StockRow
	reservations map[string]*inventory.Reservation
	branches     map[string]inventory.Branch
	products     map[string]inventory.Product
	events       []*audit.Event
	eventsByID   map[string]*audit.Event
}

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state state
}

func NewStore() *Store {
	return &Store{
		state: state{
			workOrders:   map[string]*workorder.WorkOrder{},
			stock:        map[inventory.StockKey]*inventory.StockRow{},
			reservations: map[string]*inventory.Reservation{},
			branches:     map[string]inventory.Branch{},
			products:     map[string]inventory.Product{},
			eventsByID:   map[string]*audit.Event{},
		},
	}
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// apply runs ops in order under the write lock. When one fails, the ones
// already applied are undone in reverse order.
func (s *Store) apply(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	undos := make([]func(), 0, len(ops))
	for _, o := range ops {
		undo, err := o(&s.state)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				undos[i]()
			}
			return err
		}
		undos = append(undos, undo)
	}
	return nil
}

// op is one staged write. It validates against the current state, mutates
// it and returns how to revert the mutation.
type op func(st *state) (undo func(), err error)
