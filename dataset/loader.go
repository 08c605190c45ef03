package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// LoadOptions controls how a delimited file becomes a Frame.
type LoadOptions struct {
	// Drop lists columns removed outright (e.g. a customer id).
	Drop []string
	// BinaryColumns maps a column name to its two literal string values;
	// the first maps to 1, the second to 0. Applied before one-hot expansion.
	BinaryColumns map[string]BinaryMapping
	// Categorical lists columns one-hot expanded into col_value indicators.
	Categorical []string
	// Charset is the source encoding: "utf-8" (default), "gbk" or "latin-1".
	Charset string
	// Comma is the field delimiter; 0 means ','.
	Comma rune
}

// BinaryMapping names the literal mapped to 1 and the literal mapped to 0.
type BinaryMapping struct {
	True  string `yaml:"positive"`
	False string `yaml:"negative"`
}

// Load reads a delimited file into a Frame: drops the configured columns,
// remaps binary literals to {1,0}, parses numeric columns, and one-hot
// expands the configured categorical columns in first-seen category order.
// Deterministic given identical source and options. Any missing configured
// column is an error.
func Load(path string, opts LoadOptions) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	decoder, err := charsetDecoder(opts.Charset)
	if err != nil {
		return nil, err
	}
	var source io.Reader = file
	if decoder != nil {
		source = transform.NewReader(file, decoder)
	}

	reader := csv.NewReader(source)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([][]string, 0, 1024)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, record)
	}

	dropSet := make(map[string]bool, len(opts.Drop))
	for _, name := range opts.Drop {
		dropSet[name] = true
	}
	catSet := make(map[string]bool, len(opts.Categorical))
	for _, name := range opts.Categorical {
		catSet[name] = true
	}
	if err := checkConfiguredColumns(header, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	frame := NewFrame()
	for j, name := range header {
		if dropSet[name] {
			continue
		}
		raw := make([]string, len(records))
		for i, record := range records {
			if j >= len(record) {
				return nil, fmt.Errorf("%s: row %d has %d fields, header has %d", path, i+2, len(record), len(header))
			}
			raw[i] = strings.TrimSpace(record[j])
		}

		switch {
		case catSet[name]:
			if err := addOneHot(frame, name, raw); err != nil {
				return nil, err
			}
		default:
			mapping, binary := opts.BinaryColumns[name]
			values, err := parseColumn(name, raw, mapping, binary)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if err := frame.AddColumn(name, values); err != nil {
				return nil, err
			}
		}
	}
	if err := frame.checkRect(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

func checkConfiguredColumns(header []string, opts LoadOptions) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range opts.Drop {
		if !present[name] {
			return fmt.Errorf("drop column %q not in header", name)
		}
	}
	for _, name := range opts.Categorical {
		if !present[name] {
			return fmt.Errorf("categorical column %q not in header", name)
		}
	}
	for name := range opts.BinaryColumns {
		if !present[name] {
			return fmt.Errorf("binary column %q not in header", name)
		}
	}
	return nil
}

func parseColumn(name string, raw []string, mapping BinaryMapping, binary bool) ([]float64, error) {
	values := make([]float64, len(raw))
	for i, cell := range raw {
		if binary {
			switch cell {
			case mapping.True:
				values[i] = 1
			case mapping.False:
				values[i] = 0
			default:
				return nil, fmt.Errorf("column %q row %d: %q is neither %q nor %q", name, i+2, cell, mapping.True, mapping.False)
			}
			continue
		}
		parsed, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, i+2, cell)
		}
		values[i] = parsed
	}
	return values, nil
}

// addOneHot expands a categorical column into one indicator column per
// distinct value, named col_value, in first-seen order.
func addOneHot(frame *Frame, name string, raw []string) error {
	order := make([]string, 0, 8)
	seen := make(map[string]bool, 8)
	for _, cell := range raw {
		if !seen[cell] {
			seen[cell] = true
			order = append(order, cell)
		}
	}
	for _, category := range order {
		indicator := make([]float64, len(raw))
		for i, cell := range raw {
			if cell == category {
				indicator[i] = 1
			}
		}
		if err := frame.AddColumn(name+"_"+category, indicator); err != nil {
			return err
		}
	}
	return nil
}

func charsetDecoder(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "gbk":
		return simplifiedchinese.GBK.NewDecoder(), nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}
