package mongo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

const booksCollection = "books"

// BookRepository persists library entries in MongoDB.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type bookDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Author          string             `bson:"author"`
	Genre           string             `bson:"genre,omitempty"`
	PublicationYear int                `bson:"publication_year,omitempty"`
	ISBN            *string            `bson:"isbn,omitempty"`
	CoverImage      string             `bson:"cover_image,omitempty"`
	Rating          *float64           `bson:"rating,omitempty"`
	Notes           string             `bson:"notes,omitempty"`
	Tags            []string           `bson:"tags,omitempty"`
	PageCount       int                `bson:"page_count,omitempty"`
	Status          string             `bson:"status"`
	DateStarted     *time.Time         `bson:"date_started,omitempty"`
	DateFinished    *time.Time         `bson:"date_finished,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func bookToDoc(b *domain.Book) bookDoc {
	doc := bookDoc{
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		CoverImage:      b.CoverImage,
		Rating:          b.Rating,
		Notes:           b.Notes,
		Tags:            b.Tags,
		PageCount:       b.PageCount,
		Status:          string(b.Status),
		DateStarted:     b.DateStarted,
		DateFinished:    b.DateFinished,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	// Omitted entirely when empty so the sparse unique index ignores it.
	if b.ISBN != "" {
		isbn := b.ISBN
		doc.ISBN = &isbn
	}
	return doc
}

func (d *bookDoc) toDomain() *domain.Book {
	b := &domain.Book{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Author:          d.Author,
		Genre:           d.Genre,
		PublicationYear: d.PublicationYear,
		CoverImage:      d.CoverImage,
		Rating:          d.Rating,
		Notes:           d.Notes,
		Tags:            d.Tags,
		PageCount:       d.PageCount,
		Status:          domain.ReadingStatus(d.Status),
		DateStarted:     d.DateStarted,
		DateFinished:    d.DateFinished,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.ISBN != nil {
		b.ISBN = *d.ISBN
	}
	return b
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := bookToDoc(book)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return doc.toDomain(), nil
}

// Find runs a filtered, sorted, paginated listing. Search matches title or
// author with a case-insensitive regex, mirroring the admin UI's behaviour.
func (r *BookRepository) Find(ctx context.Context, filter ports.BookFilter) (*ports.BookPage, error) {
	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: escapeRegex(filter.Search), Options: "i"}
		query["$or"] = bson.A{bson.M{"title": re}, bson.M{"author": re}}
	}
	if filter.Genre != "" {
		query["genre"] = primitive.Regex{Pattern: escapeRegex(filter.Genre), Options: "i"}
	}
	if filter.Author != "" {
		query["author"] = primitive.Regex{Pattern: escapeRegex(filter.Author), Options: "i"}
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.MinRating != nil || filter.MaxRating != nil {
		rating := bson.M{}
		if filter.MinRating != nil {
			rating["$gte"] = *filter.MinRating
		}
		if filter.MaxRating != nil {
			rating["$lte"] = *filter.MaxRating
		}
		query["rating"] = rating
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(sortSpec(filter.Sort)).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domain.Book, 0, filter.Limit)
	for cur.Next(ctx) {
		var doc bookDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		items = append(items, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &ports.BookPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	doc := bookToDoc(book)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBookNotFound
	}

	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// Stats aggregates shelf totals, rating average and the newest entry.
func (r *BookRepository) Stats(ctx context.Context) (*ports.BookStats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rating": bson.M{"$exists": true, "$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_rating": bson.M{"$avg": "$rating"},
			"count":      bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	stats := &ports.BookStats{Total: total}
	if cur.Next(ctx) {
		var agg struct {
			AvgRating float64 `bson:"avg_rating"`
			Count     int64   `bson:"count"`
		}
		if err := cur.Decode(&agg); err != nil {
			return nil, fmt.Errorf("decode rating aggregate: %w", err)
		}
		stats.AvgRating = math.Round(agg.AvgRating*10) / 10
		stats.Rated = agg.Count
	}

	var recent bookDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err = r.coll.FindOne(ctx, bson.M{}, opts).Decode(&recent)
	if err == nil {
		stats.Recent = recent.toDomain()
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("find recent book: %w", err)
	}

	return stats, nil
}

// sortSpec converts a Mongoose-style sort string ("-createdAt", "title") into
// a bson sort document.
func sortSpec(sort string) bson.D {
	field := sort
	dir := 1
	if strings.HasPrefix(sort, "-") {
		field = sort[1:]
		dir = -1
	}
	switch field {
	case "createdAt", "":
		field = "created_at"
	case "updatedAt":
		field = "updated_at"
	case "publicationYear":
		field = "publication_year"
	case "brigittesRating", "rating":
		field = "rating"
	case "title", "author", "genre", "status":
		// stored under the same name
	default:
		field = "created_at"
	}
	return bson.D{{Key: field, Value: dir}}
}

var regexSpecials = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`,
	`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
	`^`, `\^`, `$`, `\$`, `|`, `\|`,
)

// escapeRegex neutralizes regex metacharacters in user-supplied search terms.
func escapeRegex(s string) string {
	return regexSpecials.Replace(s)
}
