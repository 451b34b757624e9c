package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("Book is not found")

// Book belongs to exactly one author. Deleting the author does not cascade;
// orphaned books keep their author_id.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}
