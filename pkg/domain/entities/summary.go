package entities

// SummaryRecord is one row of the unified stock report.
//
// For product rows CloudTotal = Primary + Other and GrandTotal = CloudTotal + CGTotal.
// The synthetic total row carries the column sums and IsTotal = true.
type SummaryRecord struct {
	SKU         CloudSKU    `json:"sku"`
	PlatformSKU PlatformSKU `json:"platform_sku"`
	Primary     Quantity    `json:"primary"`
	Other       Quantity    `json:"other"`
	CloudTotal  Quantity    `json:"cloud_total"`
	CGTotal     Quantity    `json:"cg_total"`
	GrandTotal  Quantity    `json:"grand_total"`
	IsTotal     bool        `json:"is_total,omitempty"`
}

// Quantities returns the numeric columns in report order
func (r SummaryRecord) Quantities() []Quantity {
	return []Quantity{r.Primary, r.Other, r.CloudTotal, r.CGTotal, r.GrandTotal}
}

// Statistics are the scalar figures shown next to the report
type Statistics struct {
	GrandTotal Quantity `json:"grand_total"`
	CGTotal    Quantity `json:"cg_total"`
	CloudTotal Quantity `json:"cloud_total"`
	SKUCount   int      `json:"sku_count"`
}

// ReportColumnCount is the number of columns in a rendered report
const ReportColumnCount = 7

// DefaultHeaders returns the report column labels, in column order
func DefaultHeaders() []string {
	return []string{"SKU", "平台sku", "CALA", "WS", "海外仓总库存", "CG库存", "总库存"}
}
