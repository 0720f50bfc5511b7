package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search_NormalizesDocs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("title") != "dune" {
			t.Fatalf("title param missing: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"docs":[
			{"title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,
			 "isbn":["9780441172719","0441172717"],"cover_i":11481354,
			 "subject":["Science fiction","Dune (Imaginary place)","Fiction","Extra"],
			 "publisher":["Chilton Books"],"number_of_pages_median":412},
			{"title":"Anonymous Work"}
		]}`))
	}))
	defer srv.Close()

	client := NewClientWithBase(srv.URL, srv.Client())

	books, err := client.Search(context.Background(), "dune", "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d results, want 2", len(books))
	}

	first := books[0]
	if first.Author != "Frank Herbert" {
		t.Fatalf("author = %q", first.Author)
	}
	if first.ISBN != "9780441172719" {
		t.Fatalf("isbn = %q, want first listed", first.ISBN)
	}
	if first.CoverImage != "https://covers.openlibrary.org/b/id/11481354-L.jpg" {
		t.Fatalf("cover = %q", first.CoverImage)
	}
	if first.Genre != "Science fiction, Dune (Imaginary place), Fiction" {
		t.Fatalf("genre = %q, want first three subjects", first.Genre)
	}
	if first.PageCount != 412 {
		t.Fatalf("pageCount = %d", first.PageCount)
	}

	if books[1].Author != "Unknown" {
		t.Fatalf("docs without authors default to Unknown, got %q", books[1].Author)
	}
}

func TestClient_Search_CapsAtTenResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"docs":[
			{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},
			{"title":"6"},{"title":"7"},{"title":"8"},{"title":"9"},{"title":"10"},
			{"title":"11"},{"title":"12"}
		]}`))
	}))
	defer srv.Close()

	client := NewClientWithBase(srv.URL, srv.Client())

	books, err := client.Search(context.Background(), "", "herbert")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(books) != 10 {
		t.Fatalf("got %d results, want 10", len(books))
	}
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	client := NewClientWithBase("http://unused.invalid", nil)

	if _, err := client.Search(context.Background(), "", ""); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestClient_Search_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClientWithBase(srv.URL, srv.Client())

	if _, err := client.Search(context.Background(), "dune", ""); err == nil {
		t.Fatalf("expected error on upstream 503")
	}
}

func TestClient_ByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/isbn/9780441172719.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Dune","publish_date":"1965",
			"covers":[11481354],"publishers":["Chilton Books"],"number_of_pages":412}`))
	}))
	defer srv.Close()

	client := NewClientWithBase(srv.URL, srv.Client())

	book, err := client.ByISBN(context.Background(), "9780441172719")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if book.Title != "Dune" || book.ISBN != "9780441172719" {
		t.Fatalf("unexpected book: %+v", book)
	}
	if book.PublicationYear != 1965 {
		t.Fatalf("year = %d, want 1965", book.PublicationYear)
	}
	if book.Publisher != "Chilton Books" {
		t.Fatalf("publisher = %q", book.Publisher)
	}
}
