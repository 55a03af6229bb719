package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader matches the paper's data files.
var csvHeader = []string{"main_star_n", "gap_k"}

// Read parses satellite rows from CSV. The first record must be the
// main_star_n,gap_k header.
func Read(r io.Reader) ([]Satellite, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog csv: read header: %w", err)
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, fmt.Errorf("catalog csv: unexpected header %v, want %v", header, csvHeader)
	}

	var sats []Satellite
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog csv: line %d: %w", line, err)
		}
		star, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog csv: line %d: bad star %q", line, record[0])
		}
		gap, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("catalog csv: line %d: bad gap %q", line, record[1])
		}
		sats = append(sats, Satellite{Star: star, Gap: gap})
	}
	return sats, nil
}

// ReadFile loads a catalog file.
func ReadFile(path string) ([]Satellite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write emits the header and all rows.
func Write(w io.Writer, sats []Satellite) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := writeRows(cw, sats); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes a complete catalog file, replacing any existing one.
func WriteFile(path string, sats []Satellite) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AppendFile adds rows to an existing catalog file, creating it with a
// header first if needed. New scan runs extend the paper's catalog this
// way without rewriting it.
func AppendFile(path string, sats []Satellite) error {
	info, err := os.Stat(path)
	fresh := os.IsNotExist(err) || (err == nil && info.Size() == 0)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if fresh {
		if err := cw.Write(csvHeader); err != nil {
			f.Close()
			return err
		}
	}
	if err := writeRows(cw, sats); err != nil {
		f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRows(cw *csv.Writer, sats []Satellite) error {
	for _, s := range sats {
		record := []string{
			strconv.FormatInt(s.Star, 10),
			strconv.Itoa(s.Gap),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}
