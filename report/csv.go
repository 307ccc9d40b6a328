package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// FlattenDocument turns a two-level JSON object into CSV rows, preserving the
// key order of the document itself. Each section becomes a header row, its
// keys become indented rows, and a blank row closes the section.
func FlattenDocument(r io.Reader) ([][]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var rows [][]string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		section, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v where section name expected", tok)
		}
		if err = expectDelim(dec, '{'); err != nil {
			return nil, err
		}

		rows = append(rows, []string{section, ""})
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected token %v where key expected", keyTok)
			}
			valueTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			value, err := formatScalar(valueTok)
			if err != nil {
				return nil, fmt.Errorf("section %s key %s: %w", section, key, err)
			}
			rows = append(rows, []string{"    " + key, value})
		}
		if _, err = dec.Token(); err != nil {
			return nil, err
		}
		rows = append(rows, []string{"", ""})
	}
	return rows, nil
}

// WriteCSV writes flattened rows to path
func WriteCSV(path string, rows [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err = w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("unexpected token %v, expected %v", tok, want)
	}
	return nil
}

func formatScalar(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("document nests deeper than two levels")
	}
}
