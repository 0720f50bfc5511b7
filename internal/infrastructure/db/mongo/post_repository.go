package mongo

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

const postsCollection = "posts"

// PostRepository persists blog posts in MongoDB.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type postDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Content     bson.M             `bson:"content"`
	Excerpt     string             `bson:"excerpt,omitempty"`
	Tags        []string           `bson:"tags,omitempty"`
	AuthorID    primitive.ObjectID `bson:"author"`
	Status      string             `bson:"status"`
	PublishedAt *time.Time         `bson:"published_at,omitempty"`
	Likes       int                `bson:"likes"`
	LikedBy     []string           `bson:"liked_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func postToDoc(p *domain.BlogPost) (postDoc, error) {
	authorID, err := primitive.ObjectIDFromHex(p.AuthorID)
	if err != nil {
		return postDoc{}, fmt.Errorf("invalid author id %q", p.AuthorID)
	}
	return postDoc{
		Title:       p.Title,
		Slug:        p.Slug,
		Content:     bson.M(p.Content),
		Excerpt:     p.Excerpt,
		Tags:        p.Tags,
		AuthorID:    authorID,
		Status:      string(p.Status),
		PublishedAt: p.PublishedAt,
		Likes:       p.Likes,
		LikedBy:     p.LikedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d *postDoc) toDomain() *domain.BlogPost {
	return &domain.BlogPost{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Slug:        d.Slug,
		Content:     map[string]any(d.Content),
		Excerpt:     d.Excerpt,
		Tags:        d.Tags,
		AuthorID:    d.AuthorID.Hex(),
		Status:      domain.PostStatus(d.Status),
		PublishedAt: d.PublishedAt,
		Likes:       d.Likes,
		LikedBy:     d.LikedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	doc, err := postToDoc(post)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// FindBySlug returns a published post only; drafts stay invisible to the
// public site even when the slug is known.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	query := bson.M{"slug": slug, "status": string(domain.PostPublished)}

	var doc postDoc
	if err := r.coll.FindOne(ctx, query).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Find(ctx context.Context, filter ports.PostFilter) (*ports.PostPage, error) {
	query := bson.M{}
	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.PublishedOnly {
		query["status"] = string(domain.PostPublished)
		sort = bson.D{{Key: "published_at", Value: -1}}
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domain.BlogPost, 0, filter.Limit)
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		items = append(items, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &ports.PostPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":        post.Title,
		"content":      bson.M(post.Content),
		"excerpt":      post.Excerpt,
		"tags":         post.Tags,
		"status":       string(post.Status),
		"published_at": post.PublishedAt,
		"updated_at":   post.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}

	return r.FindByID(ctx, post.ID)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike increments the like counter only when clientKey has not liked the
// post before. The filter-and-update pair is a single atomic operation, so
// concurrent likes from the same key cannot double count.
func (r *PostRepository) AddLike(ctx context.Context, id, clientKey string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrPostNotFound
	}

	filter := bson.M{"_id": oid, "liked_by": bson.M{"$ne": clientKey}}
	update := bson.M{
		"$inc":  bson.M{"likes": 1},
		"$push": bson.M{"liked_by": clientKey},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("like post: %w", err)
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}

	// Distinguish "already liked" from "no such post".
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("like post: %w", err)
	}
	if n == 0 {
		return false, domain.ErrPostNotFound
	}
	return false, nil
}

// Stats aggregates publication counts, total likes and the newest published post.
func (r *PostRepository) Stats(ctx context.Context) (*ports.PostStats, error) {
	published, err := r.coll.CountDocuments(ctx, bson.M{"status": string(domain.PostPublished)})
	if err != nil {
		return nil, fmt.Errorf("count published: %w", err)
	}
	drafts, err := r.coll.CountDocuments(ctx, bson.M{"status": string(domain.PostDraft)})
	if err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total_likes": bson.M{"$sum": "$likes"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate likes: %w", err)
	}
	defer cur.Close(ctx)

	stats := &ports.PostStats{Published: published, Drafts: drafts}
	if cur.Next(ctx) {
		var agg struct {
			TotalLikes int64 `bson:"total_likes"`
		}
		if err := cur.Decode(&agg); err != nil {
			return nil, fmt.Errorf("decode like aggregate: %w", err)
		}
		stats.TotalLikes = agg.TotalLikes
	}

	var recent postDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "published_at", Value: -1}})
	err = r.coll.FindOne(ctx, bson.M{"status": string(domain.PostPublished)}, opts).Decode(&recent)
	if err == nil {
		stats.Recent = recent.toDomain()
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("find recent post: %w", err)
	}

	return stats, nil
}
