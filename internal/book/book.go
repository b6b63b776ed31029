package book

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidBook is returned when a stored document does not look like a book.
	ErrInvalidBook = errors.New("invalid book document")
	// ErrInvalidPage is returned for a page with a non-positive size.
	ErrInvalidPage = errors.New("invalid page")
)

// Book represents a document of the books collection.
type Book struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Author        string        `bson:"author" json:"author"`
	Genre         string        `bson:"genre" json:"genre"`
	PublishedYear int           `bson:"published_year" json:"published_year"`
	Price         float64       `bson:"price" json:"price"`
	InStock       bool          `bson:"in_stock" json:"in_stock"`
	Pages         int           `bson:"pages,omitempty" json:"pages,omitempty"`
	Publisher     string        `bson:"publisher,omitempty" json:"publisher,omitempty"`
}

// Validate reports whether b carries the fields every catalog entry must have.
func (b Book) Validate() error {
	var problems []string
	if strings.TrimSpace(b.Title) == "" {
		problems = append(problems, "title is empty")
	}
	if strings.TrimSpace(b.Author) == "" {
		problems = append(problems, "author is empty")
	}
	if b.Price < 0 {
		problems = append(problems, "price is negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w %s: %s", ErrInvalidBook, b.ID.Hex(), strings.Join(problems, ", "))
	}
	return nil
}

// Listing is the projected view of a book: title, author and price only.
type Listing struct {
	Title  string  `bson:"title" json:"title"`
	Author string  `bson:"author" json:"author"`
	Price  float64 `bson:"price" json:"price"`
}

// GenrePrice is one row of the average-price-by-genre aggregation.
type GenrePrice struct {
	Genre    string  `bson:"_id" json:"genre"`
	AvgPrice float64 `bson:"avgPrice" json:"avg_price"`
}

// AuthorCount is one row of the books-per-author aggregation.
type AuthorCount struct {
	Author string `bson:"_id" json:"author"`
	Count  int    `bson:"count" json:"count"`
}

// DecadeCount is one row of the books-per-decade aggregation.
type DecadeCount struct {
	Decade int `bson:"_id" json:"decade"`
	Count  int `bson:"count" json:"count"`
}

// Label formats the decade for display, e.g. "1950s".
func (d DecadeCount) Label() string {
	return fmt.Sprintf("%ds", d.Decade)
}

// MarshalJSON renders the decade by its label.
func (d DecadeCount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"decade":%q,"count":%d}`, d.Label(), d.Count)), nil
}

// UpdateResult holds the counts reported by an update-one.
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// DeleteResult holds the count reported by a delete-one.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}

// Index is a created index.
type Index struct {
	Name string    `json:"name"`
	Spec IndexSpec `json:"-"`
}

// ExecutionStats is the part of an explain("executionStats") answer worth reporting.
type ExecutionStats struct {
	Success      bool     `json:"execution_success"`
	Returned     int64    `json:"n_returned"`
	TimeMillis   int64    `json:"execution_time_millis"`
	KeysExamined int64    `json:"total_keys_examined"`
	DocsExamined int64    `json:"total_docs_examined"`
	Stages       []string `json:"stages"`
	IndexName    string   `json:"index_name,omitempty"`
}

// UsedIndex reports whether the winning plan read through an index.
func (s ExecutionStats) UsedIndex() bool {
	for _, st := range s.Stages {
		if strings.HasSuffix(st, "IXSCAN") {
			return true
		}
	}
	return false
}
