// Package reconcile merges cloud and CG stock into one per-SKU report.
//
// The set of SKUs reported is every cloud SKU seen in the cloud source plus
// every cloud SKU named by the mapping. CG stock is reached only through the
// mapping; there is no approximate matching. Records are ordered by SKU and the
// total row is always first, so the same inputs always give the same report.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/repositories"
)

const (
	DefaultPrimaryWarehouse     = "X005-CA"
	DefaultCountedWarehouseType = "Castlegate"
	DefaultTotalLabel           = "共计"
)

// EngineConfig holds the business constants of a reconciliation
type EngineConfig struct {
	// PrimaryWarehouse is the cloud warehouse code reported in its own column.
	PrimaryWarehouse string
	// CountedWarehouseType is the only CG warehouse type whose stock counts.
	CountedWarehouseType string
	// TotalLabel is the SKU label of the total row.
	TotalLabel string
}

func (c *EngineConfig) applyDefaults() {
	if c.PrimaryWarehouse == "" {
		c.PrimaryWarehouse = DefaultPrimaryWarehouse
	}
	if c.CountedWarehouseType == "" {
		c.CountedWarehouseType = DefaultCountedWarehouseType
	}
	if c.TotalLabel == "" {
		c.TotalLabel = DefaultTotalLabel
	}
}

// ReconciliationService builds stock reports. It holds no per-run state and is
// safe for concurrent use.
type ReconciliationService struct {
	log     *slog.Logger
	config  EngineConfig
	mapping *entities.SKUMapping
}

// NewReconciliationService creates a service over a validated mapping.
// Empty config fields take their defaults; a nil logger discards output.
func NewReconciliationService(
	log *slog.Logger,
	mapping *entities.SKUMapping,
	config EngineConfig,
) (*ReconciliationService, error) {
	if mapping == nil {
		return nil, errors.New("SKU mapping is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	config.applyDefaults()

	return &ReconciliationService{
		log:     log,
		config:  config,
		mapping: mapping,
	}, nil
}

// Config returns the effective configuration
func (s *ReconciliationService) Config() EngineConfig {
	return s.config
}

// Mapping returns the SKU mapping in use
func (s *ReconciliationService) Mapping() *entities.SKUMapping {
	return s.mapping
}

// Universe returns the sorted set of cloud SKUs to report on
func (s *ReconciliationService) Universe(cloud repositories.CloudInventoryRepository) ([]entities.CloudSKU, error) {
	seen := make(map[entities.CloudSKU]struct{})

	if cloud != nil {
		skus, err := cloud.GetSKUs()
		if err != nil {
			return nil, fmt.Errorf("failed to list cloud SKUs: %w", err)
		}
		for _, sku := range skus {
			seen[sku] = struct{}{}
		}
	}
	for _, sku := range s.mapping.CloudSKUs() {
		seen[sku] = struct{}{}
	}
	delete(seen, "")

	universe := make([]entities.CloudSKU, 0, len(seen))
	for sku := range seen {
		universe = append(universe, sku)
	}
	sort.Slice(universe, func(i, j int) bool { return universe[i] < universe[j] })

	return universe, nil
}

// Reconcile computes the full report. Either repository may be nil, in which
// case that source contributes zero to every SKU. The run either completes or
// fails as a whole; no partial report is returned.
func (s *ReconciliationService) Reconcile(
	ctx context.Context,
	cloud repositories.CloudInventoryRepository,
	cg repositories.CGInventoryRepository,
) (*dto.Report, error) {
	start := time.Now()

	universe, err := s.Universe(cloud)
	if err != nil {
		return nil, err
	}

	cloudAgg := NewCloudAggregator(cloud, s.config.PrimaryWarehouse)
	cgAgg := NewCGAggregator(cg, s.config.CountedWarehouseType)

	records := make([]entities.SummaryRecord, 0, len(universe))
	for _, sku := range universe {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reconciliation interrupted: %w", err)
		}

		record, err := s.reconcileSKU(sku, cloudAgg, cgAgg)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	unmapped, err := s.findUnmapped(cg)
	if err != nil {
		return nil, err
	}

	rows := Summarize(records, s.config.TotalLabel)
	report := &dto.Report{
		Rows:       rows,
		Statistics: ComputeStatistics(rows),
		Unmapped:   unmapped,
	}

	s.log.Debug("reconciliation complete",
		"skus", len(records),
		"unmapped", len(unmapped),
		"duration", time.Since(start))

	return report, nil
}

func (s *ReconciliationService) reconcileSKU(
	sku entities.CloudSKU,
	cloudAgg *CloudAggregator,
	cgAgg *CGAggregator,
) (entities.SummaryRecord, error) {
	platform, _ := s.mapping.PlatformFor(sku)

	cloudSub, err := cloudAgg.Subtotal(sku)
	if err != nil {
		return entities.SummaryRecord{}, err
	}
	cgTotal, err := cgAgg.Subtotal(platform)
	if err != nil {
		return entities.SummaryRecord{}, err
	}

	return entities.SummaryRecord{
		SKU:         sku,
		PlatformSKU: platform,
		Primary:     cloudSub.Primary,
		Other:       cloudSub.Other,
		CloudTotal:  cloudSub.Total,
		CGTotal:     cgTotal,
		GrandTotal:  cloudSub.Total.Add(cgTotal),
	}, nil
}

// findUnmapped lists platform SKUs with rows of the counted warehouse type but
// no mapping entry, with the stock that is therefore left out of the report.
func (s *ReconciliationService) findUnmapped(cg repositories.CGInventoryRepository) ([]entities.UnmappedStock, error) {
	if cg == nil {
		return nil, nil
	}

	skus, err := cg.GetSKUs()
	if err != nil {
		return nil, fmt.Errorf("failed to list CG SKUs: %w", err)
	}

	var unmapped []entities.UnmappedStock
	for _, sku := range skus {
		if _, ok := s.mapping.CloudFor(sku); ok {
			continue
		}
		rows, err := cg.GetStockRows(sku)
		if err != nil {
			return nil, fmt.Errorf("failed to get CG rows for %s: %w", sku, err)
		}

		counted := false
		var available entities.Quantity
		for _, row := range rows {
			if row.WarehouseType != s.config.CountedWarehouseType {
				continue
			}
			counted = true
			available = available.Add(row.Available)
		}
		if counted {
			unmapped = append(unmapped, entities.UnmappedStock{PlatformSKU: sku, Available: available})
		}
	}

	return unmapped, nil
}
