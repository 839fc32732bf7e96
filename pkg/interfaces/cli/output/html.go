package output

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var summaryTemplate = template.Must(
	template.New("summary.html").
		Funcs(template.FuncMap{"qty": FormatQuantity}).
		ParseFS(templateFS, "templates/summary.html"),
)

// StatCard is one headline figure on the HTML report
type StatCard struct {
	Label string
	Value string
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	Headers     []string
	Total       *entities.SummaryRecord
	Records     []entities.SummaryRecord
	Stats       []StatCard
	Unmapped    []entities.UnmappedStock
	GeneratedAt string
}

// WriteHTML renders the report as a self-contained HTML page
func WriteHTML(w io.Writer, report *dto.Report, headers []string) error {
	if err := summaryTemplate.Execute(w, buildTemplateData(report, headers, time.Now())); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

func buildTemplateData(report *dto.Report, headers []string, at time.Time) *TemplateData {
	stats := report.Statistics
	data := &TemplateData{
		Headers: headers,
		Records: report.Records(),
		Stats: []StatCard{
			{Label: "Total Stock", Value: FormatQuantity(stats.GrandTotal)},
			{Label: "CG Stock", Value: FormatQuantity(stats.CGTotal)},
			{Label: "Overseas Stock", Value: FormatQuantity(stats.CloudTotal)},
			{Label: "SKUs", Value: groupThousands(fmt.Sprint(stats.SKUCount))},
		},
		Unmapped:    report.Unmapped,
		GeneratedAt: at.Format("2006-01-02 15:04:05"),
	}
	if total, ok := report.TotalRow(); ok {
		data.Total = &total
	}
	return data
}
