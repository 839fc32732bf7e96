package reconcile

import (
	"fmt"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/repositories"
)

// CloudSubtotal is the cloud stock of one SKU split by warehouse
type CloudSubtotal struct {
	Primary entities.Quantity
	Other   entities.Quantity
	Total   entities.Quantity
}

// CloudAggregator sums dropship stock per SKU from the cloud source
type CloudAggregator struct {
	repo             repositories.CloudInventoryRepository
	primaryWarehouse string
}

// NewCloudAggregator creates an aggregator. A nil repo yields zero subtotals.
func NewCloudAggregator(repo repositories.CloudInventoryRepository, primaryWarehouse string) *CloudAggregator {
	return &CloudAggregator{repo: repo, primaryWarehouse: primaryWarehouse}
}

// Subtotal returns the SKU's stock at the primary warehouse, elsewhere, and in total.
// Other is always Total - Primary; it is never summed from the remaining rows.
func (a *CloudAggregator) Subtotal(sku entities.CloudSKU) (CloudSubtotal, error) {
	var sub CloudSubtotal
	if a.repo == nil {
		return sub, nil
	}

	rows, err := a.repo.GetStockRows(sku)
	if err != nil {
		return sub, fmt.Errorf("failed to get cloud rows for %s: %w", sku, err)
	}

	for _, row := range rows {
		sub.Total = sub.Total.Add(row.DropshipOnHand)
		if row.Warehouse == a.primaryWarehouse {
			sub.Primary = sub.Primary.Add(row.DropshipOnHand)
		}
	}
	sub.Other = sub.Total.Sub(sub.Primary)

	return sub, nil
}

// CGAggregator sums available stock per platform SKU from the CG source,
// counting only the configured warehouse type.
type CGAggregator struct {
	repo        repositories.CGInventoryRepository
	countedType string
}

// NewCGAggregator creates an aggregator. A nil repo yields zero subtotals.
func NewCGAggregator(repo repositories.CGInventoryRepository, countedType string) *CGAggregator {
	return &CGAggregator{repo: repo, countedType: countedType}
}

// Subtotal returns the counted stock of a platform SKU. An empty SKU is zero.
func (a *CGAggregator) Subtotal(sku entities.PlatformSKU) (entities.Quantity, error) {
	var total entities.Quantity
	if a.repo == nil || sku == "" {
		return total, nil
	}

	rows, err := a.repo.GetStockRows(sku)
	if err != nil {
		return total, fmt.Errorf("failed to get CG rows for %s: %w", sku, err)
	}

	for _, row := range rows {
		if row.WarehouseType != a.countedType {
			continue
		}
		total = total.Add(row.Available)
	}

	return total, nil
}
