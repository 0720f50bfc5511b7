package ports

import "context"

// CatalogBook is a normalized result from an external book catalog.
type CatalogBook struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publicationYear,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	CoverImage      string `json:"coverImage,omitempty"`
	Genre           string `json:"genre,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PageCount       int    `json:"pageCount,omitempty"`
}

// CatalogClient looks up book metadata in an external catalog.
type CatalogClient interface {
	Search(ctx context.Context, title, author string) ([]CatalogBook, error)
	ByISBN(ctx context.Context, isbn string) (*CatalogBook, error)
}
