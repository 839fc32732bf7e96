package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// Encoding selects how CSV bytes are decoded
type Encoding string

const (
	// EncodingAuto honours a byte order mark, falling back to GBK when the
	// content is not valid UTF-8. Spreadsheet tools on Chinese-locale systems
	// save CSV as GBK by default.
	EncodingAuto Encoding = "auto"
	EncodingUTF8 Encoding = "utf-8"
	EncodingGBK  Encoding = "gbk"
)

// ParseEncoding validates an encoding name
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingAuto:
		return EncodingAuto, nil
	case EncodingUTF8, "utf8":
		return EncodingUTF8, nil
	case EncodingGBK, "gb2312", "gb18030":
		return EncodingGBK, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (expected auto, utf-8 or gbk)", s)
	}
}

// Loader handles loading source tables from CSV files
type Loader struct {
	encoding Encoding
}

// NewLoader creates a new CSV loader
func NewLoader(encoding Encoding) *Loader {
	if encoding == "" {
		encoding = EncodingAuto
	}
	return &Loader{encoding: encoding}
}

// LoadTable loads a table from a CSV file. name labels the table in errors
// and reports.
func (l *Loader) LoadTable(name, filename string) (*entities.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	return l.ReadTable(name, file)
}

// ReadTable reads a table from CSV content. The first record is the header;
// rows may be shorter or longer than the header.
func (l *Loader) ReadTable(name string, r io.Reader) (*entities.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	decoded, err := l.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s CSV: %w", name, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s CSV: %w", name, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header row", name)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	return &entities.Table{
		Name:    name,
		Columns: header,
		Rows:    records[1:],
	}, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8) ||
		bytes.HasPrefix(data, bomUTF16LE) ||
		bytes.HasPrefix(data, bomUTF16BE)
}

func (l *Loader) decode(data []byte) ([]byte, error) {
	if l.encoding == EncodingGBK || (l.encoding == EncodingAuto && !hasBOM(data) && !utf8.Valid(data)) {
		out, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
		return out, err
	}

	// BOMOverride strips a UTF-8 BOM and switches to UTF-16 when one is present
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	return out, err
}
