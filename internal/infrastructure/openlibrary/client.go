// Package openlibrary is a thin client for the Open Library search API, used
// by the admin console to pre-fill book metadata.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bookbuddy/library-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	coverURLFormat = "https://covers.openlibrary.org/b/id/%d-L.jpg"
	maxResults     = 10
)

var ErrEmptyQuery = errors.New("provide at least a title or author")

// Client calls the Open Library HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBase is used by tests to point the client at a stub server.
func NewClientWithBase(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	CoverID          int      `json:"cover_i"`
	Subject          []string `json:"subject"`
	Publisher        []string `json:"publisher"`
	PageCountMedian  int      `json:"number_of_pages_median"`
}

// Search queries the catalog by title and/or author and returns up to ten
// normalized results.
func (c *Client) Search(ctx context.Context, title, author string) ([]ports.CatalogBook, error) {
	if title == "" && author == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	if title != "" {
		params.Set("title", title)
	}
	if author != "" {
		params.Set("author", author)
	}

	var payload searchResponse
	if err := c.get(ctx, "/search.json?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	docs := payload.Docs
	if len(docs) > maxResults {
		docs = docs[:maxResults]
	}

	books := make([]ports.CatalogBook, 0, len(docs))
	for _, doc := range docs {
		book := ports.CatalogBook{
			Title:           doc.Title,
			Author:          "Unknown",
			PublicationYear: doc.FirstPublishYear,
			PageCount:       doc.PageCountMedian,
		}
		if len(doc.AuthorName) > 0 {
			book.Author = strings.Join(doc.AuthorName, ", ")
		}
		if len(doc.ISBN) > 0 {
			book.ISBN = doc.ISBN[0]
		}
		if doc.CoverID > 0 {
			book.CoverImage = fmt.Sprintf(coverURLFormat, doc.CoverID)
		}
		if len(doc.Subject) > 0 {
			n := len(doc.Subject)
			if n > 3 {
				n = 3
			}
			book.Genre = strings.Join(doc.Subject[:n], ", ")
		}
		if len(doc.Publisher) > 0 {
			book.Publisher = doc.Publisher[0]
		}
		books = append(books, book)
	}
	return books, nil
}

type isbnResponse struct {
	Title         string   `json:"title"`
	PublishDate   string   `json:"publish_date"`
	Covers        []int    `json:"covers"`
	Publishers    []string `json:"publishers"`
	NumberOfPages int      `json:"number_of_pages"`
}

// ByISBN looks up a single edition by ISBN-10 or ISBN-13.
func (c *Client) ByISBN(ctx context.Context, isbn string) (*ports.CatalogBook, error) {
	var payload isbnResponse
	if err := c.get(ctx, "/isbn/"+url.PathEscape(isbn)+".json", &payload); err != nil {
		return nil, err
	}

	book := &ports.CatalogBook{
		Title:     payload.Title,
		ISBN:      isbn,
		PageCount: payload.NumberOfPages,
	}
	if year, err := strconv.Atoi(strings.TrimSpace(payload.PublishDate)); err == nil {
		book.PublicationYear = year
	}
	if len(payload.Covers) > 0 {
		book.CoverImage = fmt.Sprintf(coverURLFormat, payload.Covers[0])
	}
	if len(payload.Publishers) > 0 {
		book.Publisher = strings.Join(payload.Publishers, ", ")
	}
	return book, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("open library request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("open library request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open library responded %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("open library decode: %w", err)
	}
	return nil
}
