package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/inventory"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements ports.StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Add inserts rows whose key is not stored yet and reports how many were new.
func (r *GormStockRepository) Add(ctx context.Context, rows ...*inventory.StockRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	dtos := make([]StockRowDTO, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, stockFromDomain(row))
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dtos)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// GetMany locks the selected rows with FOR UPDATE. Rows are read in key
// order so concurrent callers acquire the row locks in the same order.
func (r *GormStockRepository) GetMany(
	ctx context.Context,
	branchID string,
	productIDs []string,
) (map[string]*inventory.StockRow, error) {
	result := make(map[string]*inventory.StockRow, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var dtos []StockRowDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("branch_id = ? AND product_id IN ?", branchID, productIDs).
		Order("product_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		row, err := stockToDomain(dto)
		if err != nil {
			return nil, err
		}
		result[row.ProductID()] = row
	}

	return result, nil
}

// Save writes the counters of existing rows.
func (r *GormStockRepository) Save(ctx context.Context, rows ...*inventory.StockRow) error {
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return err
		}
		dto := stockFromDomain(row)
		result := r.db.WithContext(ctx).
			Model(&StockRowDTO{}).
			Where("branch_id = ? AND product_id = ?", dto.BranchID, dto.ProductID).
			Updates(map[string]any{
				"qty_available": dto.QtyAvailable,
				"qty_reserved":  dto.QtyReserved,
				"updated_at":    dto.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("stockRow", row.Key().String())
		}
	}
	return nil
}

func (r *GormStockRepository) ListByBranch(ctx context.Context, branchID string) ([]*inventory.StockRow, error) {
	var dtos []StockRowDTO
	if err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("product_id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return stockRowsToDomain(dtos)
}

func (r *GormStockRepository) ListAll(ctx context.Context) ([]*inventory.StockRow, error) {
	var dtos []StockRowDTO
	if err := r.db.WithContext(ctx).Order("branch_id, product_id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return stockRowsToDomain(dtos)
}

func stockRowsToDomain(dtos []StockRowDTO) ([]*inventory.StockRow, error) {
	rows := make([]*inventory.StockRow, 0, len(dtos))
	for _, dto := range dtos {
		row, err := stockToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("stock row %s/%s: %w", dto.BranchID, dto.ProductID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GormReservationRepository implements ports.ReservationRepository using GORM.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Get(ctx context.Context, workOrderID string) (*inventory.Reservation, error) {
	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "work_order_id = ?", workOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewReservationNotFoundError(workOrderID)
		}
		return nil, err
	}
	return reservationToDomain(dto)
}

// Add inserts the reservation; a second reservation for the same work order
// is a conflict.
func (r *GormReservationRepository) Add(ctx context.Context, reservation *inventory.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	dto, err := reservationFromDomain(reservation)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewReservationConflictError(reservation.WorkOrderID())
		}
		return err
	}
	return nil
}

func (r *GormReservationRepository) Delete(ctx context.Context, workOrderID string) error {
	result := r.db.WithContext(ctx).Delete(&ReservationDTO{}, "work_order_id = ?", workOrderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewReservationNotFoundError(workOrderID)
	}
	return nil
}

func (r *GormReservationRepository) List(ctx context.Context) ([]*inventory.Reservation, error) {
	var dtos []ReservationDTO
	if err := r.db.WithContext(ctx).Order("work_order_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	reservations := make([]*inventory.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		res, err := reservationToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", dto.WorkOrderID, err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}
