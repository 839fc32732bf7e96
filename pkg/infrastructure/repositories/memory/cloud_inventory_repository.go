package memory

import (
	"sort"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/repositories"
)

// CloudInventoryRepository provides in-memory storage for cloud warehouse rows
type CloudInventoryRepository struct {
	rows  []entities.CloudStockRow
	bySKU map[entities.CloudSKU][]int
}

// NewCloudInventoryRepository creates a new in-memory cloud inventory repository
func NewCloudInventoryRepository(expectedRows int) *CloudInventoryRepository {
	return &CloudInventoryRepository{
		rows:  make([]entities.CloudStockRow, 0, expectedRows),
		bySKU: make(map[entities.CloudSKU][]int),
	}
}

// Verify interface compliance
var _ repositories.CloudInventoryRepository = (*CloudInventoryRepository)(nil)

// LoadStockRows loads cloud rows into the repository
func (r *CloudInventoryRepository) LoadStockRows(rows []*entities.CloudStockRow) error {
	for _, row := range rows {
		r.AddStockRow(*row)
	}
	return nil
}

// AddStockRow adds a single row, indexing it by SKU
func (r *CloudInventoryRepository) AddStockRow(row entities.CloudStockRow) {
	r.rows = append(r.rows, row)
	r.bySKU[row.SKU] = append(r.bySKU[row.SKU], len(r.rows)-1)
}

// GetStockRows returns every row for a SKU, in load order
func (r *CloudInventoryRepository) GetStockRows(sku entities.CloudSKU) ([]*entities.CloudStockRow, error) {
	indexes := r.bySKU[sku]
	rows := make([]*entities.CloudStockRow, 0, len(indexes))
	for _, i := range indexes {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}

// GetAllStockRows returns all rows
func (r *CloudInventoryRepository) GetAllStockRows() ([]*entities.CloudStockRow, error) {
	rows := make([]*entities.CloudStockRow, 0, len(r.rows))
	for i := range r.rows {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}

// GetSKUs returns the distinct non-empty SKUs, sorted
func (r *CloudInventoryRepository) GetSKUs() ([]entities.CloudSKU, error) {
	skus := make([]entities.CloudSKU, 0, len(r.bySKU))
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
func (r *CloudInventoryRepository) Len() int {
	return len(r.rows)
}
