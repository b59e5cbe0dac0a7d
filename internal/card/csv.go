package card

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads card rows from a CSV file with a header row. Recognized
// columns: name, type, serial, soul_text, theme_color, image_url. Missing
// columns leave the field empty; a missing theme_color falls back to the
// default accent.
func LoadCSV(path string) ([]Data, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	cards, err := ReadCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cards, nil
}

func ReadCSV(r io.Reader) ([]Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Data{}
	for _, row := range rows[1:] {
		d := Data{
			Name:       get(row, "name"),
			Type:       get(row, "type"),
			Serial:     get(row, "serial"),
			SoulText:   get(row, "soul_text"),
			ThemeColor: get(row, "theme_color"),
			ImageURL:   get(row, "image_url"),
		}
		if d.ThemeColor == "" {
			d.ThemeColor = DefaultThemeColor
		}
		out = append(out, d)
	}
	return out, nil
}
