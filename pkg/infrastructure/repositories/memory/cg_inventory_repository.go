package memory

import (
	"sort"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/repositories"
)

// CGInventoryRepository provides in-memory storage for CG platform rows
type CGInventoryRepository struct {
	rows  []entities.CGStockRow
	bySKU map[entities.PlatformSKU][]int
}

// NewCGInventoryRepository creates a new in-memory CG inventory repository
func NewCGInventoryRepository(expectedRows int) *CGInventoryRepository {
	return &CGInventoryRepository{
		rows:  make([]entities.CGStockRow, 0, expectedRows),
		bySKU: make(map[entities.PlatformSKU][]int),
	}
}

var _ repositories.CGInventoryRepository = (*CGInventoryRepository)(nil)

// LoadStockRows loads CG rows into the repository
func (r *CGInventoryRepository) LoadStockRows(rows []*entities.CGStockRow) error {
	for _, row := range rows {
		r.AddStockRow(*row)
	}
	return nil
}

// AddStockRow adds a single row, indexing it by platform SKU
func (r *CGInventoryRepository) AddStockRow(row entities.CGStockRow) {
	r.rows = append(r.rows, row)
	r.bySKU[row.SKU] = append(r.bySKU[row.SKU], len(r.rows)-1)
}

// GetStockRows returns every row for a platform SKU regardless of warehouse type
func (r *CGInventoryRepository) GetStockRows(sku entities.PlatformSKU) ([]*entities.CGStockRow, error) {
	indexes := r.bySKU[sku]
	rows := make([]*entities.CGStockRow, 0, len(indexes))
	for _, i := range indexes {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}

// GetAllStockRows returns all rows
func (r *CGInventoryRepository) GetAllStockRows() ([]*entities.CGStockRow, error) {
	rows := make([]*entities.CGStockRow, 0, len(r.rows))
	for i := range r.rows {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}

// GetSKUs returns the distinct non-empty platform SKUs, sorted
func (r *CGInventoryRepository) GetSKUs() ([]entities.PlatformSKU, error) {
	skus := make([]entities.PlatformSKU, 0, len(r.bySKU))
	for sku := range r.bySKU {
		if sku == "" {
			continue
		}
		skus = append(skus, sku)
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i] < skus[j] })
	return skus, nil
}

// Len returns the number of stored rows
func (r *CGInventoryRepository) Len() int {
	return len(r.rows)
}
