package inventoryrepo

import (
	"context"

	"workorders/internal/core/domain/model/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AddBranches inserts unknown branches and keeps existing ones untouched.
func (r *GormCatalogRepository) AddBranches(ctx context.Context, branches ...inventory.Branch) (int, error) {
	if len(branches) == 0 {
		return 0, nil
	}
	dtos := make([]BranchDTO, 0, len(branches))
	for _, b := range branches {
		dtos = append(dtos, branchFromDomain(b))
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dtos)
	return int(result.RowsAffected), result.Error
}

// AddProducts inserts unknown products and keeps existing ones untouched.
func (r *GormCatalogRepository) AddProducts(ctx context.Context, products ...inventory.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, productFromDomain(p))
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dtos)
	return int(result.RowsAffected), result.Error
}

func (r *GormCatalogRepository) ListBranches(ctx context.Context) ([]inventory.Branch, error) {
	var dtos []BranchDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	branches := make([]inventory.Branch, 0, len(dtos))
	for _, dto := range dtos {
		branches = append(branches, inventory.Branch{ID: dto.ID, Name: dto.Name, IsMain: dto.IsMain})
	}
	return branches, nil
}

func (r *GormCatalogRepository) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	products := make([]inventory.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, inventory.Product{
			ID:           dto.ID,
			Name:         dto.Name,
			Category:     dto.Category,
			IsSerialized: dto.IsSerialized,
		})
	}
	return products, nil
}
