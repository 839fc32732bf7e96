package repositories

import "github.com/vsinha/stockrecon/pkg/domain/entities"

// CloudInventoryRepository provides access to cloud warehouse stock rows
type CloudInventoryRepository interface {
	GetStockRows(sku entities.CloudSKU) ([]*entities.CloudStockRow, error)
	GetAllStockRows() ([]*entities.CloudStockRow, error)
	// GetSKUs returns the distinct non-empty SKUs present, sorted.
	GetSKUs() ([]entities.CloudSKU, error)
	LoadStockRows(rows []*entities.CloudStockRow) error
}

// CGInventoryRepository provides access to CG platform stock rows
type CGInventoryRepository interface {
	GetStockRows(sku entities.PlatformSKU) ([]*entities.CGStockRow, error)
	GetAllStockRows() ([]*entities.CGStockRow, error)
	GetSKUs() ([]entities.PlatformSKU, error)
	LoadStockRows(rows []*entities.CGStockRow) error
}
