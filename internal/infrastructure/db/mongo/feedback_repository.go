package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

const collectionFeedback = "feedback"

type FeedbackRepository struct {
	col *mongo.Collection
	ids *Sequence
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback), ids: NewSequence(db, collectionFeedback)}
}

type mongoFeedback struct {
	ID             int64     `bson:"_id"`
	EmployeeID     int64     `bson:"employee_id"`
	ManagerID      int64     `bson:"manager_id"`
	Strengths      string    `bson:"strengths"`
	AreasToImprove string    `bson:"areas_to_improve"`
	Sentiment      enumValue `bson:"sentiment"`
	Acknowledged   bool      `bson:"acknowledged"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (m *mongoFeedback) toDomain() *domain.Feedback {
	return &domain.Feedback{
		ID:             m.ID,
		EmployeeID:     m.EmployeeID,
		ManagerID:      m.ManagerID,
		Strengths:      m.Strengths,
		AreasToImprove: m.AreasToImprove,
		Sentiment:      domain.Sentiment(m.Sentiment),
		Acknowledged:   m.Acknowledged,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Create inserts a new feedback document.
func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoFeedback{
		ID:             id,
		EmployeeID:     f.EmployeeID,
		ManagerID:      f.ManagerID,
		Strengths:      f.Strengths,
		AreasToImprove: f.AreasToImprove,
		Sentiment:      enumValue(f.Sentiment),
		Acknowledged:   f.Acknowledged,
		CreatedAt:      f.CreatedAt.UTC(),
		UpdatedAt:      f.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, storeError("insert feedback", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoFeedback
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, storeError("find feedback", err)
	}
	return doc.toDomain(), nil
}

// newestFirst orders feedback by creation time, breaking ties on the higher id.
var newestFirst = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// ListByEmployee returns the employee's feedback ordered by created_at desc.
func (r *FeedbackRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"employee_id": employeeID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, storeError("list feedback", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFeedback
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decode feedback", err)
	}

	out := make([]*domain.Feedback, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// MarkAcknowledged flips the acknowledged flag of one entry.
func (r *FeedbackRepository) MarkAcknowledged(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"acknowledged": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return storeError("acknowledge feedback", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the feedback collection.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
