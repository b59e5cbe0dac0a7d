// Package agent defines the published agent record shared by the publish
// path, the gallery and every record store backend.
package agent

import (
	"errors"
	"time"

	"github.com/youruser/soulcard/internal/card"
)

// Table is the record store table (or collection) holding published agents.
const Table = "agents"

// ErrNotFound is returned by record stores when no row has the given id.
var ErrNotFound = errors.New("agent not found")

// ListOptions narrows a record store listing. Rows are always returned
// newest first.
type ListOptions struct {
	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// Record is one published card. ID and CreatedAt are assigned by the store.
type Record struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Model        string    `json:"model" bson:"model"`
	SerialNumber string    `json:"serial_number" bson:"serial_number"`
	SoulText     string    `json:"soul_text" bson:"soul_text"`
	ThemeColor   string    `json:"theme_color" bson:"theme_color"`
	ImageURL     string    `json:"image_url" bson:"image_url"`
	CreatedAt    time.Time `json:"created_at,omitzero" bson:"created_at"`
}

// FromCard maps form data plus the uploaded image URL onto a new record.
func FromCard(d card.Data, imageURL string) Record {
	return Record{
		Name:         d.Name,
		Model:        d.Type,
		SerialNumber: d.Serial,
		SoulText:     d.SoulText,
		ThemeColor:   d.ThemeColor,
		ImageURL:     imageURL,
	}
}
