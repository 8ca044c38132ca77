package paper

import (
	"time"

	"github.com/google/uuid"
)

// Notes holds freeform notes and PDF highlights for one paper.
type Notes struct {
	Citekey      string      `json:"citekey"`
	Content      string      `json:"content,omitempty"`
	Highlights   []Highlight `json:"highlights,omitempty"`
	LastModified time.Time   `json:"last_modified"`
}

// HighlightRect is a highlighted region on a PDF page, in page
// coordinates.
type HighlightRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Highlight is a user-created annotation on a paper's PDF.
type Highlight struct {
	ID        string          `json:"id"`
	Page      int             `json:"page"`
	Rects     []HighlightRect `json:"rects,omitempty"`
	Text      string          `json:"text,omitempty"`
	Color     string          `json:"color"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewNotes creates an empty notes document for a paper.
func NewNotes(citekey string) *Notes {
	return &Notes{
		Citekey:      citekey,
		LastModified: time.Now().UTC(),
	}
}

// NewHighlight creates a highlight with a fresh id and default color.
func NewHighlight(page int, text string) Highlight {
	return Highlight{
		ID:        uuid.New().String()[:16],
		Page:      page,
		Text:      text,
		Color:     "yellow",
		CreatedAt: time.Now().UTC(),
	}
}
