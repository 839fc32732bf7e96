package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Headers labels the report columns; empty uses entities.DefaultHeaders.
	Headers       []string
	ReconcileTime time.Duration
	// Stdout receives console output; nil means os.Stdout.
	Stdout io.Writer
	// Now stamps generated file names; nil means time.Now.
	Now func() time.Time
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c Config) headers() []string {
	if len(c.Headers) == 0 {
		return entities.DefaultHeaders()
	}
	return c.Headers
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Generate writes the report in the configured format. Text goes to stdout;
// json and csv go to stdout unless an output directory is set; xlsx and html
// are always files, written to the current directory by default. The path of
// the written file is returned, or "" when output went to stdout.
func Generate(report *dto.Report, config Config) (string, error) {
	switch config.Format {
	case "", "text":
		return "", WriteText(config.stdout(), report, config.headers(), config.ReconcileTime)
	case "json":
		if config.OutputDir == "" {
			return "", WriteJSON(config.stdout(), report)
		}
		return writeFile(report, config, func(w io.Writer) error { return WriteJSON(w, report) })
	case "csv":
		if config.OutputDir == "" {
			return "", WriteCSV(config.stdout(), report, config.headers())
		}
		return writeFile(report, config, func(w io.Writer) error { return WriteCSV(w, report, config.headers()) })
	case "xlsx":
		return writeFile(report, config, func(w io.Writer) error { return WriteXLSX(w, report, config.headers()) })
	case "html":
		return writeFile(report, config, func(w io.Writer) error { return WriteHTML(w, report, config.headers()) })
	default:
		return "", fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// FileName returns the download name of a report, e.g.
// inventory_summary_20250115_143005.xlsx
func FileName(format string, at time.Time) string {
	return fmt.Sprintf("inventory_summary_%s.%s", at.Format("20060102_150405"), format)
}

// ContentType returns the MIME type of a report format
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv; charset=utf-8"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeFile(report *dto.Report, config Config, write func(io.Writer) error) (string, error) {
	dir := config.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, FileName(config.Format, config.now()))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s file: %w", config.Format, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write %s file: %w", config.Format, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s file: %w", config.Format, err)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 Report saved to: %s\n", filename)
	}
	return filename, nil
}

// WriteText renders the report as a console table followed by the statistics panel
func WriteText(w io.Writer, report *dto.Report, headers []string, elapsed time.Duration) error {
	fmt.Fprintf(w, "📊 Inventory Summary\n")
	fmt.Fprintf(w, "====================\n\n")

	if len(report.Rows) == 0 {
		fmt.Fprintf(w, "No SKUs to report.\n")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader(headers)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	for _, r := range report.Rows {
		table.Append(recordCells(r))
	}
	table.Render()

	stats := report.Statistics
	fmt.Fprintf(w, "\n%-16s %s\n", "Total Stock:", FormatQuantity(stats.GrandTotal))
	fmt.Fprintf(w, "%-16s %s\n", "CG Stock:", FormatQuantity(stats.CGTotal))
	fmt.Fprintf(w, "%-16s %s\n", "Overseas Stock:", FormatQuantity(stats.CloudTotal))
	fmt.Fprintf(w, "%-16s %s\n", "SKUs:", groupThousands(fmt.Sprint(stats.SKUCount)))
	if elapsed > 0 {
		fmt.Fprintf(w, "%-16s %v\n", "Reconcile Time:", elapsed.Round(time.Microsecond))
	}

	if len(report.Unmapped) > 0 {
		fmt.Fprintf(w, "\n⚠️  CG stock without a mapping entry (not included above):\n")
		for _, u := range report.Unmapped {
			fmt.Fprintf(w, "  %-20s %s\n", u.PlatformSKU, FormatQuantity(u.Available))
		}
	}

	return nil
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, report *dto.Report) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// WriteCSV writes the header row followed by every report row, total first
func WriteCSV(w io.Writer, report *dto.Report, headers []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range report.Rows {
		if err := cw.Write(recordCells(r)); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", r.SKU, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordCells(r entities.SummaryRecord) []string {
	cells := []string{string(r.SKU), string(r.PlatformSKU)}
	for _, q := range r.Quantities() {
		cells = append(cells, q.String())
	}
	return cells
}

// FormatQuantity renders a quantity with thousands separators, e.g. 12,345
func FormatQuantity(q entities.Quantity) string {
	return groupThousands(q.String())
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}
