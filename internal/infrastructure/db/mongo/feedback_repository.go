package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(collectionFeedback)}
}

type feedbackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"feedback"`
	Category  primitive.ObjectID `bson:"category"`
	Reviewed  bool               `bson:"reviewed"`
	Anonymous bool               `bson:"anonymous"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`

	// Populated by the $lookup stage in List.
	Categories []categoryDoc `bson:"categories,omitempty"`
}

func (d *feedbackDoc) toDomain() *domain.Feedback {
	f := &domain.Feedback{
		ID:         d.ID.Hex(),
		Text:       d.Text,
		CategoryID: d.Category.Hex(),
		Reviewed:   d.Reviewed,
		Anonymous:  d.Anonymous,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
	if len(d.Categories) > 0 {
		f.Category = d.Categories[0].toDomain()
	}
	return f
}

// List returns feedback newest first with its category joined in. An empty
// categoryID lists everything; an unparsable one matches nothing.
func (r *FeedbackRepository) List(ctx context.Context, categoryID string) ([]*domain.Feedback, error) {
	match := bson.M{}
	if categoryID != "" {
		oid, ok := objectID(categoryID)
		if !ok {
			return []*domain.Feedback{}, nil
		}
		match["category"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionCategories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categories",
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback: %w", err)
	}
	var docs []feedbackDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	out := make([]*domain.Feedback, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	categoryOID, ok := objectID(f.CategoryID)
	if !ok {
		return nil, fmt.Errorf("insert feedback: invalid category id %q", f.CategoryID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := feedbackDoc{
		ID:        primitive.NewObjectID(),
		Text:      f.Text,
		Category:  categoryOID,
		Reviewed:  f.Reviewed,
		Anonymous: f.Anonymous,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc feedbackDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrFeedbackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

// MarkReviewed flips the reviewed flag and returns the updated entry.
func (r *FeedbackRepository) MarkReviewed(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc feedbackDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"reviewed": true, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("mark feedback reviewed: %w", err)
	}
	return doc.toDomain(), nil
}
