package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// BlogPost is a blog entry. Content is a structured rich-text document
// (editor-native JSON) stored opaquely; the API never interprets it beyond
// requiring a top-level "type" field.
type BlogPost struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     map[string]any `json:"content"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	AuthorID    string         `json:"author"`
	Status      PostStatus     `json:"status"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Likes       int            `json:"likes"`
	LikedBy     []string       `json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

var nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
var whitespace = regexp.MustCompile(`\s+`)
var multiHyphen = regexp.MustCompile(`-+`)

// Slugify derives a URL slug from a post title, suffixed with a timestamp to
// guarantee uniqueness across posts sharing a title.
func Slugify(title string, now time.Time) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%d", s, now.UnixMilli())
}
