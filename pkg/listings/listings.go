// Package listings decodes short-term rental listings from CSV.
package listings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/validation"
)

// Column names expected in the CSV header.
const (
	ColumnNeighbourhoodGroup = "neighbourhood_group"
	ColumnNeighbourhood      = "neighbourhood"
	ColumnPrice              = "price"
	ColumnRoomType           = "room_type"
)

// Sentinel errors
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoListings    = errors.New("no listings found")
)

// Listing is one rental listing.
type Listing struct {
	NeighbourhoodGroup string  `json:"neighbourhood_group"`
	Neighbourhood      string  `json:"neighbourhood" validate:"required"`
	Price              float64 `json:"price" validate:"gte=0"`
	RoomType           string  `json:"room_type"`
}

// RecordError reports a malformed CSV record.
type RecordError struct {
	Line  int
	Field string
	Cause error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Cause)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}

// Load reads every listing from r. The first malformed record aborts the load
// and no listings are returned.
func Load(r io.Reader) ([]Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoListings
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []Listing
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RecordError{Line: pe.Line, Cause: pe.Err}
			}
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		listing, err := decode(record, cols, line)
		if err != nil {
			return nil, err
		}
		out = append(out, listing)
	}

	if len(out) == 0 {
		return nil, ErrNoListings
	}
	return out, nil
}

type columns struct {
	group, neighbourhood, price, roomType int
}

func columnIndex(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	lookup := func(name string, required bool) (int, error) {
		i, ok := idx[name]
		if !ok {
			if required {
				return -1, fmt.Errorf("%w: %s", ErrMissingColumn, name)
			}
			return -1, nil
		}
		return i, nil
	}

	var c columns
	var err error
	if c.neighbourhood, err = lookup(ColumnNeighbourhood, true); err != nil {
		return c, err
	}
	if c.price, err = lookup(ColumnPrice, true); err != nil {
		return c, err
	}
	c.group, _ = lookup(ColumnNeighbourhoodGroup, false)
	c.roomType, _ = lookup(ColumnRoomType, false)
	return c, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func decode(record []string, cols columns, line int) (Listing, error) {
	if cols.price >= len(record) || cols.neighbourhood >= len(record) {
		return Listing{}, &RecordError{Line: line, Cause: fmt.Errorf("expected at least %d fields, got %d",
			max(cols.price, cols.neighbourhood)+1, len(record))}
	}

	raw := field(record, cols.price)
	price, err := strconv.ParseFloat(strings.TrimPrefix(raw, "$"), 64)
	if err != nil {
		return Listing{}, &RecordError{Line: line, Field: ColumnPrice, Cause: fmt.Errorf("parse %q: %w", raw, err)}
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Listing{}, &RecordError{Line: line, Field: ColumnPrice, Cause: fmt.Errorf("price %q is not finite", raw)}
	}

	l := Listing{
		NeighbourhoodGroup: field(record, cols.group),
		Neighbourhood:      field(record, cols.neighbourhood),
		Price:              price,
		RoomType:           field(record, cols.roomType),
	}
	if err := Validate(&l); err != nil {
		return Listing{}, &RecordError{Line: line, Cause: err}
	}
	return l, nil
}

// Validate checks a listing's struct constraints.
func Validate(l *Listing) error {
	return validation.Struct(l)
}
