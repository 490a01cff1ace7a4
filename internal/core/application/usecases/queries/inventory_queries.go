package queries

import (
	"context"
	"errors"
	"strings"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var (
	ErrListInventoryQueryIsNotConstructed = errors.New(
		"ListInventoryQuery must be created via NewListInventoryQuery constructor",
	)
	ErrCatalogQueryIsNotConstructed = errors.New(
		"CatalogQuery must be created via NewCatalogQuery constructor",
	)
	ErrReconcileInventoryQueryIsNotConstructed = errors.New(
		"ReconcileInventoryQuery must be created via NewReconcileInventoryQuery constructor",
	)
)

// ListInventoryQuery lists the stock of one branch.
type ListInventoryQuery struct {
	branchID string
	guard    guard.ConstructorGuard
}

func NewListInventoryQuery(branchID string) (ListInventoryQuery, error) {
	branchID = strings.TrimSpace(branchID)
	if branchID == "" {
		return ListInventoryQuery{}, errs.NewValueIsRequiredError("branchId")
	}
	return ListInventoryQuery{branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListInventoryQuery) Validate() error {
	return q.guard.Validate(ErrListInventoryQueryIsNotConstructed)
}

func (q ListInventoryQuery) BranchID() string {
	return q.branchID
}

type ListInventoryQueryHandler struct {
	reader InventoryReader
}

func NewListInventoryQueryHandler(reader InventoryReader) ListInventoryQueryHandler {
	return ListInventoryQueryHandler{reader: reader}
}

// Handle returns an empty slice for an unknown branch.
func (h ListInventoryQueryHandler) Handle(ctx context.Context, query ListInventoryQuery) ([]inventory.StockView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ListInventory(ctx, query.BranchID())
}

// CatalogQuery lists branches or products; it carries no parameters.
type CatalogQuery struct {
	guard guard.ConstructorGuard
}

func NewCatalogQuery() CatalogQuery {
	return CatalogQuery{guard: guard.NewConstructorGuard()}
}

func (q CatalogQuery) Validate() error {
	return q.guard.Validate(ErrCatalogQueryIsNotConstructed)
}

type ListBranchesQueryHandler struct {
	reader InventoryReader
}

func NewListBranchesQueryHandler(reader InventoryReader) ListBranchesQueryHandler {
	return ListBranchesQueryHandler{reader: reader}
}

func (h ListBranchesQueryHandler) Handle(ctx context.Context, query CatalogQuery) ([]inventory.Branch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ListBranches(ctx)
}

type ListProductsQueryHandler struct {
	reader InventoryReader
}

func NewListProductsQueryHandler(reader InventoryReader) ListProductsQueryHandler {
	return ListProductsQueryHandler{reader: reader}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query CatalogQuery) ([]inventory.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ListProducts(ctx)
}

// ReconcileInventoryQuery checks the ledger conservation invariants.
type ReconcileInventoryQuery struct {
	guard guard.ConstructorGuard
}

func NewReconcileInventoryQuery() ReconcileInventoryQuery {
	return ReconcileInventoryQuery{guard: guard.NewConstructorGuard()}
}

func (q ReconcileInventoryQuery) Validate() error {
	return q.guard.Validate(ErrReconcileInventoryQueryIsNotConstructed)
}

type ReconcileInventoryQueryHandler struct {
	reader InventoryReader
}

func NewReconcileInventoryQueryHandler(reader InventoryReader) ReconcileInventoryQueryHandler {
	return ReconcileInventoryQueryHandler{reader: reader}
}

func (h ReconcileInventoryQueryHandler) Handle(ctx context.Context, query ReconcileInventoryQuery) (inventory.ReconciliationReport, error) {
	if err := query.Validate(); err != nil {
		return inventory.ReconciliationReport{}, err
	}
	return h.reader.Reconcile(ctx)
}
