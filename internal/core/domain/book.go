package domain

import "time"

// ReadingStatus is the lifecycle state of a book on the shelf.
type ReadingStatus string

const (
	StatusWantToRead       ReadingStatus = "want-to-read"
	StatusCurrentlyReading ReadingStatus = "currently-reading"
	StatusRead             ReadingStatus = "read"
)

// Book is a single library entry.
type Book struct {
	ID              string        `json:"_id"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	Genre           string        `json:"genre,omitempty"`
	PublicationYear int           `json:"publicationYear,omitempty"`
	ISBN            string        `json:"isbn,omitempty"`
	CoverImage      string        `json:"coverImage,omitempty"`
	Rating          *float64      `json:"brigittesRating,omitempty"`
	Notes           string        `json:"brigittesNotes,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
	PageCount       int           `json:"pageCount,omitempty"`
	Status          ReadingStatus `json:"status"`
	DateStarted     *time.Time    `json:"dateStarted,omitempty"`
	DateFinished    *time.Time    `json:"dateFinished,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
