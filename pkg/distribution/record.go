// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package distribution

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/luxfi/autodeploy/pkg/failure"
	"github.com/spf13/afero"
)

var (
	failureHeader = []string{"address", "amount", "error"}
	successHeader = []string{"address", "amount", "txHash"}
)

// WriteFailures overwrites path with one row per failed entry, in entry
// order. Nothing is written when every entry succeeded; the returned bool
// reports whether the file was written.
func WriteFailures(fs afero.Fs, path string, result Result) (bool, error) {
	if len(result.Failed) == 0 {
		return false, nil
	}
	rows := make([][]string, 0, len(result.Failed))
	for _, o := range result.Failed {
		rows = append(rows, []string{o.Entry.Address, o.Entry.Amount, o.Reason()})
	}
	if err := writeCSV(fs, path, failureHeader, rows); err != nil {
		return false, err
	}
	return true, nil
}

// WriteSuccesses overwrites path with one row per confirmed transfer.
func WriteSuccesses(fs afero.Fs, path string, result Result) (bool, error) {
	successes := result.Successes()
	if len(successes) == 0 {
		return false, nil
	}
	rows := make([][]string, 0, len(successes))
	for _, o := range successes {
		rows = append(rows, []string{o.Entry.Address, o.Entry.Amount, o.TxHash.Hex()})
	}
	if err := writeCSV(fs, path, successHeader, rows); err != nil {
		return false, err
	}
	return true, nil
}

func writeCSV(fs afero.Fs, path string, header []string, rows [][]string) error {
	f, err := fs.Create(path)
	if err != nil {
		return failure.Wrap(failure.ErrRecord, err, "failed to create %s", path)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return failure.Wrap(failure.ErrRecord, err, "failed to write %s", path)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return failure.Wrap(failure.ErrRecord, err, "failed to write %s", path)
	}
	if err := f.Close(); err != nil {
		return failure.Wrap(failure.ErrRecord, err, "failed to close %s", path)
	}
	return nil
}

// ReadFailures loads a failure record back as entries so they can be
// distributed again.
func ReadFailures(fs afero.Fs, path string) ([]Entry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrInvalidInput, err, "failed to open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	entries := []Entry{}
	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, failure.Wrap(failure.ErrInvalidInput, err, "failed to parse %s", path)
		}
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "address") {
				continue
			}
		}
		if len(record) < 2 {
			return nil, failure.Wrap(failure.ErrInvalidInput, nil, "%s: expected address,amount but got %q", path, strings.Join(record, ","))
		}
		entries = append(entries, Entry{
			Address: strings.TrimSpace(record[0]),
			Amount:  strings.TrimSpace(record[1]),
		})
	}
	return entries, nil
}
