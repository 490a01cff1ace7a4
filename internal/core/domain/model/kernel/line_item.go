package kernel

import (
	"errors"
	"strings"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is a requested quantity of one product.
//
// Work orders carry them in order, and the inventory ledger reserves and
// releases stock by them. Quantity is always positive.
//
// Example:
//
//	item, err := kernel.NewLineItem("ont-hg8245", 2)
//	if err != nil {
//	    return err // ValueIsRequiredError or ValueIsOutOfRangeError
//	}
type LineItem struct {
	productID string
	qty       int

	guard guard.ConstructorGuard
}

// NewLineItem trims productID and requires qty > 0.
func NewLineItem(productID string, qty int) (LineItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return LineItem{}, errs.NewValueIsRequiredError("productId")
	}
	if qty <= 0 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("qty", qty, 1, "unbounded")
	}
	return LineItem{
		productID: productID,
		qty:       qty,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (li LineItem) ProductID() string {
	return li.productID
}

func (li LineItem) Qty() int {
	return li.qty
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// LineItemSpec is the wire and storage shape of a LineItem.
type LineItemSpec struct {
	ProductID string `json:"productId" yaml:"productId"`
	Qty       int    `json:"qty" yaml:"qty"`
}

// NewLineItems builds line items from specs, failing on the first invalid one.
func NewLineItems(specs []LineItemSpec) ([]LineItem, error) {
	items := make([]LineItem, 0, len(specs))
	for _, s := range specs {
		item, err := NewLineItem(s.ProductID, s.Qty)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// LineItemSpecs is the inverse of NewLineItems.
func LineItemSpecs(items []LineItem) []LineItemSpec {
	specs := make([]LineItemSpec, 0, len(items))
	for _, item := range items {
		specs = append(specs, LineItemSpec{ProductID: item.productID, Qty: item.qty})
	}
	return specs
}

// ProductIDs returns the distinct product ids of items in first-appearance order.
func ProductIDs(items []LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.productID]; ok {
			continue
		}
		seen[item.productID] = struct{}{}
		ids = append(ids, item.productID)
	}
	return ids
}
