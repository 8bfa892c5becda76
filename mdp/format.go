package mdp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads the text format: a header line "n m", then m blank-line
// delimited blocks of n rows with n transition probabilities each (one block
// per action), then n reward rows with m entries each.
//
// Problems in the text are collected instead of stopping at the first one.
// The returned tables still have to be validated, see New.
func Parse(r io.Reader) (Tables, []string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	tables := Tables{T: make([][][]float64, 0), R: make([][]float64, 0)}
	diags := make([]string, 0)
	header := false
	// a new transition block opens on the first row after a blank line
	openBlock := true
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		fields := strings.Fields(text)

		if !header {
			if len(fields) == 0 {
				continue
			}
			if len(fields) != 2 {
				diags = append(diags, fmt.Sprintf("line %d: header must be \"n m\", got %q", line, text))
				return tables, diags
			}
			n, errN := strconv.Atoi(fields[0])
			m, errM := strconv.Atoi(fields[1])
			if errN != nil || errM != nil {
				diags = append(diags, fmt.Sprintf("line %d: header must hold two integers, got %q", line, text))
				return tables, diags
			}
			tables.N, tables.M = n, m
			header = true
			continue
		}

		if len(fields) == 0 {
			openBlock = true
			continue
		}

		row, err := parseRow(fields)
		if err != nil {
			diags = append(diags, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		last := len(tables.T) - 1
		switch {
		case len(tables.R) > 0:
			tables.R = append(tables.R, row)
		case len(tables.T) < tables.M && (openBlock || len(tables.T[last]) >= tables.N):
			// a full block without a trailing blank line also opens the next one
			tables.T = append(tables.T, [][]float64{row})
		case last >= 0 && len(tables.T[last]) < tables.N:
			tables.T[last] = append(tables.T[last], row)
		default:
			tables.R = append(tables.R, row)
		}
		openBlock = false
	}
	if err := scanner.Err(); err != nil {
		diags = append(diags, fmt.Sprintf("reading input: %v", err))
	}
	if !header {
		diags = append(diags, "missing header line \"n m\"")
	}
	return tables, diags
}

func parseRow(fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %q is not a number", i, f)
		}
		row[i] = v
	}
	return row, nil
}

// Read parses and validates a model in one go. Format problems and invariant
// violations are reported together in a *ValidationError.
func Read(r io.Reader, tolerance float64) (*MDP, error) {
	tables, diags := Parse(r)
	if len(diags) > 0 {
		return nil, &ValidationError{Diagnostics: diags}
	}
	return New(tables, tolerance)
}
