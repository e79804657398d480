// Package export renders a collection's tickets as CSV, plain text or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

// Format names an output encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported format name
var ErrUnknownFormat = errors.New("unknown export format")

// Record is the stable field contract every exporter consumes
type Record struct {
	Key        models.Key        `json:"key"`
	Numbers    []int             `json:"numbers"`
	Frozen     bool              `json:"frozen"`
	Order      int               `json:"order"`
	Provenance models.Provenance `json:"provenance"`
}

// Records turns a collection into export records, in ticket order
func Records(c *models.Collection) []Record {
	out := make([]Record, len(c.Tickets))
	for i, t := range c.Tickets {
		out[i] = Record{
			Key:        t.Key,
			Numbers:    t.Combination.Numbers(),
			Frozen:     t.Frozen,
			Order:      t.Order,
			Provenance: t.Provenance,
		}
	}
	return out
}

// ParseFormat validates a format name, defaulting to CSV
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatTXT:
		return FormatTXT, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	default:
		return "text/csv"
	}
}

// Write renders records to w in format f
func Write(w io.Writer, f Format, records []Record) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatTXT:
		return WriteTXT(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

var csvHeader = []string{"order", "key", "n1", "n2", "n3", "n4", "n5", "n6", "frozen", "mode", "seed", "base", "slot", "nonce"}

// WriteCSV writes one row per ticket under a header row
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := make([]string, 0, len(csvHeader))
		row = append(row, strconv.Itoa(r.Order), string(r.Key))
		for _, n := range r.Numbers {
			row = append(row, strconv.Itoa(n))
		}
		row = append(row,
			strconv.FormatBool(r.Frozen),
			string(r.Provenance.Mode),
			r.Provenance.Seed,
			strconv.FormatUint(uint64(r.Provenance.Base), 10),
			strconv.Itoa(r.Provenance.Slot),
			strconv.Itoa(r.Provenance.Nonce),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r.Order, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTXT writes one zero-padded ticket per line, frozen tickets marked with '*'
func WriteTXT(w io.Writer, records []Record) error {
	for _, r := range records {
		parts := make([]string, len(r.Numbers))
		for i, n := range r.Numbers {
			parts[i] = fmt.Sprintf("%02d", n)
		}
		line := strings.Join(parts, " ")
		if r.Frozen {
			line += " *"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the records as an indented JSON array
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
