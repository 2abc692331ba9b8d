package comments

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MissingValue is printed in place of an absent timestamp, username or text
const MissingValue = "None"

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Presenter renders collected comments
type Presenter struct {
	format string
}

// NewPresenter creates a Presenter for the given format ("text" or "json")
func NewPresenter(format string) (*Presenter, error) {
	switch f := strings.ToLower(format); f {
	case "", FormatText:
		return &Presenter{format: FormatText}, nil
	case FormatJSON:
		return &Presenter{format: FormatJSON}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Present writes comments to w in their given order
func (p *Presenter) Present(w io.Writer, comments []Comment) error {
	if p.format == FormatJSON {
		return presentJSON(w, comments)
	}

	for _, c := range comments {
		if _, err := io.WriteString(w, FormatLine(c)+"\n"); err != nil {
			return fmt.Errorf("writing comment %s: %w", c.ID, err)
		}
	}
	return nil
}

// FormatLine renders one comment as
// "[<timestamp>] @<username>: <text> (media <media_id>)"
func FormatLine(c Comment) string {
	return fmt.Sprintf("[%s] @%s: %s (media %s)",
		orMissing(c.Timestamp), orMissing(c.Username), orMissing(c.Text), c.MediaID)
}

func orMissing(v *string) string {
	if v == nil {
		return MissingValue
	}
	return *v
}

func presentJSON(w io.Writer, comments []Comment) error {
	if comments == nil {
		comments = []Comment{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(comments); err != nil {
		return fmt.Errorf("encoding comments: %w", err)
	}
	return nil
}
