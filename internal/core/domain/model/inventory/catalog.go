package inventory

import (
	"errors"
	"strings"
	"time"

	"workorders/internal/pkg/errs"
)

// Product is a catalog entry that can be stocked.
type Product struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Category     string `json:"category,omitempty" yaml:"category"`
	IsSerialized bool   `json:"isSerialized" yaml:"isSerialized"`
}

// Branch is a location that holds stock.
type Branch struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	IsMain bool   `json:"isMain" yaml:"isMain"`
}

// StockLevel is the initial available quantity of one product in one branch.
type StockLevel struct {
	BranchID     string `yaml:"branchId"`
	ProductID    string `yaml:"productId"`
	QtyAvailable int    `yaml:"qtyAvailable"`
}

// Catalog is the bootstrap data of the ledger.
type Catalog struct {
	Branches []Branch     `yaml:"branches"`
	Products []Product    `yaml:"products"`
	Stock    []StockLevel `yaml:"stock"`
}

// Validate checks ids are present and unique and that every stock level
// references a known branch and product.
func (c Catalog) Validate() error {
	var errList []error

	branches := make(map[string]struct{}, len(c.Branches))
	for _, b := range c.Branches {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			errList = append(errList, errs.NewValueIsRequiredError("branches.id"))
			continue
		}
		if _, dup := branches[id]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("branches.id", errors.New("duplicate "+id)))
		}
		branches[id] = struct{}{}
	}

	products := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			errList = append(errList, errs.NewValueIsRequiredError("products.id"))
			continue
		}
		if _, dup := products[id]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("products.id", errors.New("duplicate "+id)))
		}
		products[id] = struct{}{}
	}

	rows := make(map[StockKey]struct{}, len(c.Stock))
	for _, s := range c.Stock {
		key := StockKey{BranchID: strings.TrimSpace(s.BranchID), ProductID: strings.TrimSpace(s.ProductID)}
		if _, ok := branches[key.BranchID]; !ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stock.branchId", errors.New("unknown branch "+key.BranchID)))
		}
		if _, ok := products[key.ProductID]; !ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stock.productId", errors.New("unknown product "+key.ProductID)))
		}
		if s.QtyAvailable < 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("stock.qtyAvailable", s.QtyAvailable, 0, "unbounded"))
		}
		if _, dup := rows[key]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stock", errors.New("duplicate row "+key.String())))
		}
		rows[key] = struct{}{}
	}

	return errors.Join(errList...)
}

// StockView is a stock row joined with its product name.
type StockView struct {
	BranchID     string
	ProductID    string
	ProductName  string
	QtyAvailable int
	QtyReserved  int
	UpdatedAt    time.Time
}

// NewStockView joins row to names. The product id stands in for a missing name.
func NewStockView(row *StockRow, productNames map[string]string) StockView {
	name, ok := productNames[row.ProductID()]
	if !ok || name == "" {
		name = row.ProductID()
	}
	return StockView{
		BranchID:     row.BranchID(),
		ProductID:    row.ProductID(),
		ProductName:  name,
		QtyAvailable: row.QtyAvailable(),
		QtyReserved:  row.QtyReserved(),
		UpdatedAt:    row.UpdatedAt(),
	}
}
