// Package tabular parses delimited client files into client records.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// ErrNoHeader is returned for an input without a header row.
var ErrNoHeader = errors.New("tabular input has no header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses delimited text with a header row naming the columns. The
// delimiter is a comma unless the header only contains semicolons or tabs.
func Read(r io.Reader) ([]model.ClientRecord, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	firstLine, err := br.Peek(peekSize(br))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectDelimiter(firstLine)
	cr.TrimLeadingSpace = cr.Comma != '\t'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name != "" && seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}

	var records []model.ClientRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records), err)
		}

		rec := make(model.ClientRecord, len(columns))
		for i, name := range columns {
			if name == "" {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile parses the delimited file at path.
func ReadFile(path string) ([]model.ClientRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func peekSize(br *bufio.Reader) int {
	if n := br.Buffered(); n > 0 {
		return n
	}
	return br.Size()
}

func detectDelimiter(sample []byte) rune {
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	if bytes.IndexByte(line, ',') >= 0 {
		return ','
	}
	if bytes.IndexByte(line, ';') >= 0 {
		return ';'
	}
	if bytes.IndexByte(line, '\t') >= 0 {
		return '\t'
	}
	return ','
}
