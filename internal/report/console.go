// Package report renders step results as a human-readable transcript.
package report

import (
	"fmt"
	"io"

	"bookcatalog/internal/book"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Console writes one block per step to an io.Writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Report writes the result of the step titled title.
func (c *Console) Report(title string, result any) error {
	var err error
	switch v := result.(type) {
	case book.UpdateResult:
		_, err = fmt.Fprintf(c.w, "\nUpdated %d document(s) - %s\n", v.Modified, title)
	case book.DeleteResult:
		_, err = fmt.Fprintf(c.w, "\nDeleted %d document(s) - %s\n", v.Deleted, title)
	case book.Index:
		_, err = fmt.Fprintf(c.w, "\nIndex %s created - %s\n", v.Name, title)
	default:
		var body []byte
		body, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %q: %w", title, err)
		}
		_, err = fmt.Fprintf(c.w, "\n%s: %s\n", title, body)
	}
	return err
}
