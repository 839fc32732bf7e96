package reconcile

import "github.com/vsinha/stockrecon/pkg/domain/entities"

// Summarize prepends a total row to records. The total row's SKU is label, its
// platform SKU is empty, and each quantity column is the column sum.
// No records means no total row.
func Summarize(records []entities.SummaryRecord, label string) []entities.SummaryRecord {
	if len(records) == 0 {
		return []entities.SummaryRecord{}
	}

	total := entities.SummaryRecord{
		SKU:     entities.CloudSKU(label),
		IsTotal: true,
	}
	for _, r := range records {
		total.Primary = total.Primary.Add(r.Primary)
		total.Other = total.Other.Add(r.Other)
		total.CloudTotal = total.CloudTotal.Add(r.CloudTotal)
		total.CGTotal = total.CGTotal.Add(r.CGTotal)
		total.GrandTotal = total.GrandTotal.Add(r.GrandTotal)
	}

	rows := make([]entities.SummaryRecord, 0, len(records)+1)
	rows = append(rows, total)
	rows = append(rows, records...)
	return rows
}

// ComputeStatistics reads the headline figures off a summarized table
func ComputeStatistics(rows []entities.SummaryRecord) entities.Statistics {
	if len(rows) == 0 {
		return entities.Statistics{}
	}
	total := rows[0]
	return entities.Statistics{
		GrandTotal: total.GrandTotal,
		CGTotal:    total.CGTotal,
		CloudTotal: total.CloudTotal,
		SKUCount:   len(rows) - 1,
	}
}
