package entities

import (
	"fmt"
)

// CloudStockRow is one cloud warehouse export row: a SKU held at one physical warehouse.
type CloudStockRow struct {
	SKU       CloudSKU
	Warehouse string
	// DropshipOnHand is the stock available for dropship fulfilment.
	DropshipOnHand Quantity
	// Metrics holds the remaining numeric columns (in-transit, sales velocity,
	// stock age, ...) keyed by column name. They are normalized but not aggregated.
	Metrics map[string]Quantity
}

// NewCloudStockRow creates a validated CloudStockRow
func NewCloudStockRow(sku CloudSKU, warehouse string, dropshipOnHand Quantity) (*CloudStockRow, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("cloud SKU cannot be empty")
	}

	return &CloudStockRow{
		SKU:            sku,
		Warehouse:      warehouse,
		DropshipOnHand: dropshipOnHand,
		Metrics:        map[string]Quantity{},
	}, nil
}

// CGStockRow is one CG platform export row: a platform SKU within one warehouse type.
type CGStockRow struct {
	SKU           PlatformSKU
	WarehouseType string
	Available     Quantity
	Metrics       map[string]Quantity
}

// NewCGStockRow creates a validated CGStockRow
func NewCGStockRow(sku PlatformSKU, warehouseType string, available Quantity) (*CGStockRow, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("platform SKU cannot be empty")
	}

	return &CGStockRow{
		SKU:           sku,
		WarehouseType: warehouseType,
		Available:     available,
		Metrics:       map[string]Quantity{},
	}, nil
}

// UnmappedStock is CG stock counted under a platform SKU that has no mapping entry.
// It can never appear in a summary record.
type UnmappedStock struct {
	PlatformSKU PlatformSKU `json:"platform_sku"`
	Available   Quantity    `json:"available"`
}
