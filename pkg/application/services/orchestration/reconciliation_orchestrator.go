package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/application/services/normalize"
	"github.com/vsinha/stockrecon/pkg/application/services/reconcile"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/memory"
)

// ErrMissingSource is returned when a run is started without both inputs
var ErrMissingSource = errors.New("both cloud and CG sources are required")

// Columns groups the column layout of both sources
type Columns struct {
	Cloud normalize.CloudColumns
	CG    normalize.CGColumns
}

// DefaultColumns returns the layouts of the standard exports
func DefaultColumns() Columns {
	return Columns{
		Cloud: normalize.DefaultCloudColumns(),
		CG:    normalize.DefaultCGColumns(),
	}
}

// ReconciliationOrchestrator coordinates normalization, loading and reconciliation
// of one pair of uploaded tables
type ReconciliationOrchestrator struct {
	log     *slog.Logger
	service *reconcile.ReconciliationService
	columns Columns
}

// NewReconciliationOrchestrator creates a new reconciliation orchestrator
func NewReconciliationOrchestrator(
	log *slog.Logger,
	service *reconcile.ReconciliationService,
	columns Columns,
) *ReconciliationOrchestrator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ReconciliationOrchestrator{
		log:     log,
		service: service,
		columns: columns,
	}
}

// Run reconciles a cloud table against a CG table. Each run gets its own
// repositories, so concurrent runs do not share state.
func (o *ReconciliationOrchestrator) Run(ctx context.Context, cloud, cg *entities.Table) (*dto.Report, error) {
	if cloud == nil || cg == nil {
		return nil, ErrMissingSource
	}

	// Step 1: Normalize both tables
	cloudRows, cloudReport, err := normalize.Cloud(cloud, o.columns.Cloud)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize cloud data: %w", err)
	}
	cgRows, cgReport, err := normalize.CG(cg, o.columns.CG)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize CG data: %w", err)
	}
	o.logNormalization(cloudReport)
	o.logNormalization(cgReport)

	// Step 2: Load repositories
	cloudRepo := memory.NewCloudInventoryRepository(len(cloudRows))
	if err := cloudRepo.LoadStockRows(cloudRows); err != nil {
		return nil, fmt.Errorf("failed to load cloud rows: %w", err)
	}
	cgRepo := memory.NewCGInventoryRepository(len(cgRows))
	if err := cgRepo.LoadStockRows(cgRows); err != nil {
		return nil, fmt.Errorf("failed to load CG rows: %w", err)
	}

	// Step 3: Reconcile
	report, err := o.service.Reconcile(ctx, cloudRepo, cgRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	report.Sources = []*normalize.Report{cloudReport, cgReport}

	for _, u := range report.Unmapped {
		o.log.Warn("CG stock has no mapping entry", "platform_sku", u.PlatformSKU, "available", u.Available.String())
	}

	return report, nil
}

func (o *ReconciliationOrchestrator) logNormalization(r *normalize.Report) {
	o.log.Debug("normalized source",
		"source", r.Source,
		"rows", r.Rows,
		"skipped", r.SkippedRows)
	if n := r.MalformedTotal(); n > 0 {
		o.log.Warn("non-numeric cells treated as zero", "source", r.Source, "cells", n, "columns", r.Malformed)
	}
	if len(r.AbsentColumns) > 0 {
		o.log.Debug("numeric columns not present", "source", r.Source, "columns", r.AbsentColumns)
	}
}
