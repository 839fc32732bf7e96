package dto

import (
	"github.com/vsinha/stockrecon/pkg/application/services/normalize"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// Report is the complete output of a reconciliation run.
//
// Rows holds the total row first, followed by one record per SKU in ascending
// SKU order. Rows is empty when there is nothing to report.
type Report struct {
	Rows       []entities.SummaryRecord `json:"rows"`
	Statistics entities.Statistics      `json:"statistics"`
	// Unmapped lists counted CG stock that no mapping entry reaches.
	Unmapped []entities.UnmappedStock `json:"unmapped,omitempty"`
	// Sources describes the normalization of each input, when the report was
	// produced from raw tables.
	Sources []*normalize.Report `json:"sources,omitempty"`
}

// Records returns the per-SKU rows without the total row
func (r *Report) Records() []entities.SummaryRecord {
	if len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[1:]
}

// TotalRow returns the total row, if the report has one
func (r *Report) TotalRow() (entities.SummaryRecord, bool) {
	if len(r.Rows) == 0 || !r.Rows[0].IsTotal {
		return entities.SummaryRecord{}, false
	}
	return r.Rows[0], true
}
