// Package inventoryrepo persists stock rows, reservations and the product
// and branch catalog.
package inventoryrepo

import (
	"encoding/json"
	"time"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/core/domain/model/kernel"
)

type StockRowDTO struct {
	BranchID     string    `gorm:"primaryKey"`
	ProductID    string    `gorm:"primaryKey"`
	QtyAvailable int       `gorm:"not null"`
	QtyReserved  int       `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (StockRowDTO) TableName() string {
	return "stock_rows"
}

type ReservationDTO struct {
	WorkOrderID string    `gorm:"primaryKey"`
	BranchID    string    `gorm:"not null"`
	Items       string    `gorm:"type:jsonb;not null"`
	ReservedAt  time.Time `gorm:"not null"`
}

func (ReservationDTO) TableName() string {
	return "reservations"
}

type BranchDTO struct {
	ID     string `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	IsMain bool   `gorm:"not null"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

type ProductDTO struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Category     string
	IsSerialized bool `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func stockFromDomain(row *inventory.StockRow) StockRowDTO {
	return StockRowDTO{
		BranchID:     row.BranchID(),
		ProductID:    row.ProductID(),
		QtyAvailable: row.QtyAvailable(),
		QtyReserved:  row.QtyReserved(),
		UpdatedAt:    row.UpdatedAt(),
	}
}

func stockToDomain(dto StockRowDTO) (*inventory.StockRow, error) {
	return inventory.RestoreStockRow(dto.BranchID, dto.ProductID, dto.QtyAvailable, dto.QtyReserved, dto.UpdatedAt)
}

func reservationFromDomain(res *inventory.Reservation) (ReservationDTO, error) {
	items, err := json.Marshal(kernel.LineItemSpecs(res.Items()))
	if err != nil {
		return ReservationDTO{}, err
	}
	return ReservationDTO{
		WorkOrderID: res.WorkOrderID(),
		BranchID:    res.BranchID(),
		Items:       string(items),
		ReservedAt:  res.ReservedAt(),
	}, nil
}

func reservationToDomain(dto ReservationDTO) (*inventory.Reservation, error) {
	var specs []kernel.LineItemSpec
	if err := json.Unmarshal([]byte(dto.Items), &specs); err != nil {
		return nil, err
	}
	items, err := kernel.NewLineItems(specs)
	if err != nil {
		return nil, err
	}
	return inventory.NewReservation(dto.WorkOrderID, dto.BranchID, items, dto.ReservedAt)
}

func branchFromDomain(b inventory.Branch) BranchDTO {
	return BranchDTO{ID: b.ID, Name: b.Name, IsMain: b.IsMain}
}

func productFromDomain(p inventory.Product) ProductDTO {
	return ProductDTO{ID: p.ID, Name: p.Name, Category: p.Category, IsSerialized: p.IsSerialized}
}
