// Package persist saves and restores the session record between runs.
//
// The record is plain text, one value per line, in a fixed order:
//
//	bgR bgG bgB overlay(0|1) camPosX camPosY camPosZ camFrontX camFrontY camFrontZ
//
// There is no header or version. Reading stops at the first missing or
// unparsable value; that field and every later one keep their defaults.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// State is the persisted session record.
type State struct {
	Background     [3]float32
	OverlayEnabled bool
	CameraPosition [3]float32
	CameraFront    [3]float32
}

// FieldCount is the number of values in a complete record.
const FieldCount = 10

// ErrTruncated is returned when the record ends before all fields were read.
var ErrTruncated = errors.New("persist: record truncated")

// Encode writes s in record order.
func (s State) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeFloat := func(v float32) {
		bw.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		bw.WriteByte('\n')
	}

	for _, v := range s.Background {
		writeFloat(v)
	}
	if s.OverlayEnabled {
		bw.WriteString("1\n")
	} else {
		bw.WriteString("0\n")
	}
	for _, v := range s.CameraPosition {
		writeFloat(v)
	}
	for _, v := range s.CameraFront {
		writeFloat(v)
	}
	return bw.Flush()
}

// Decode reads a record into s, field by field. On error s holds every field
// decoded before the failure and its previous values from there on.
// It returns the number of fields read.
func (s *State) Decode(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	out := *s
	n := 0
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", ErrTruncated
		}
		return sc.Text(), nil
	}
	readFloat := func(dst *float32) error {
		tok, err := next()
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("field %d: %w", n, err)
		}
		*dst = float32(v)
		n++
		return nil
	}

	// Fields are applied one at a time so a failure leaves the tail untouched
	commit := func() { *s = out }

	for i := range out.Background {
		if err := readFloat(&out.Background[i]); err != nil {
			return n, err
		}
		commit()
	}

	tok, err := next()
	if err != nil {
		return n, err
	}
	overlay, err := strconv.ParseBool(tok)
	if err != nil {
		return n, fmt.Errorf("field %d: %w", n, err)
	}
	out.OverlayEnabled = overlay
	n++
	commit()

	for i := range out.CameraPosition {
		if err := readFloat(&out.CameraPosition[i]); err != nil {
			return n, err
		}
		commit()
	}
	for i := range out.CameraFront {
		if err := readFloat(&out.CameraFront[i]); err != nil {
			return n, err
		}
		commit()
	}
	return n, nil
}

// Load reads the record at path over defaults. The returned state is always
// usable: a missing file yields defaults, a damaged one a partial record.
// The error is informational.
func Load(path string, defaults State) (State, error) {
	s := defaults
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("opening state file: %w", err)
	}
	defer f.Close()

	if n, err := s.Decode(f); err != nil {
		return s, fmt.Errorf("reading state file (%d of %d fields): %w", n, FieldCount, err)
	}
	return s, nil
}

// Save writes s to path, replacing any existing record.
func Save(path string, s State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating state file: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing state file: %w", err)
	}
	return nil
}
