package memory

import (
	"context"
	"errors"

	"workorders/internal/core/ports"
)

var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWork stages writes between Begin and Commit. Outside a transaction
// every write is applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool
	staged []op
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.staged = nil
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	ops := u.staged
	u.active = false
	u.staged = nil
	return u.store.apply(ops)
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.staged = nil
	return nil
}

func (u *UnitOfWork) write(o op) error {
	if u.active {
		u.staged = append(u.staged, o)
		return nil
	}
	return u.store.apply([]op{o})
}

func (u *UnitOfWork) WorkOrderRepository() ports.WorkOrderRepository {
	return &WorkOrderRepository{uow: u}
}

func (u *UnitOfWork) StockRepository() ports.StockRepository {
	return &StockRepository{uow: u}
}

func (u *UnitOfWork) ReservationRepository() ports.ReservationRepository {
	return &ReservationRepository{uow: u}
}

func (u *UnitOfWork) CatalogRepository() ports.CatalogRepository {
	return &CatalogRepository{uow: u}
}

func (u *UnitOfWork) AuditRepository() ports.AuditRepository {
	return &AuditRepository{uow: u}
}
