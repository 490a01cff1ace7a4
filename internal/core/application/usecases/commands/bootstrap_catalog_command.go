package commands

import (
	"context"
	"errors"

	"workorders/internal/core/application/ledger"
	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/pkg/guard"
)

var ErrBootstrapCatalogCommandIsNotConstructed = errors.New(
	"BootstrapCatalogCommand must be created via NewBootstrapCatalogCommand constructor",
)

// BootstrapCatalogCommand seeds branches, products and stock rows.
// Running it again with the same catalog changes nothing.
type BootstrapCatalogCommand struct { //nolint:recvcheck //using for validation
	catalog inventory.Catalog

	guard guard.ConstructorGuard
}

func NewBootstrapCatalogCommand(catalog inventory.Catalog) (BootstrapCatalogCommand, error) {
	if err := catalog.Validate(); err != nil {
		return BootstrapCatalogCommand{}, err
	}
	return BootstrapCatalogCommand{
		catalog: catalog,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BootstrapCatalogCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapCatalogCommandIsNotConstructed)
}

func (c BootstrapCatalogCommand) Catalog() inventory.Catalog {
	return c.catalog
}

type BootstrapCatalogCommandHandler struct {
	bootstrapper CatalogBootstrapper
}

func NewBootstrapCatalogCommandHandler(bootstrapper CatalogBootstrapper) BootstrapCatalogCommandHandler {
	return BootstrapCatalogCommandHandler{bootstrapper: bootstrapper}
}

func (h BootstrapCatalogCommandHandler) Handle(ctx context.Context, cmd BootstrapCatalogCommand) (ledger.BootstrapResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.BootstrapResult{}, err
	}
	return h.bootstrapper.Bootstrap(ctx, cmd.Catalog())
}
