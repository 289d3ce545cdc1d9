package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

func TestNewestFirst_SortsByCreatedAtThenID(t *testing.T) {
	want := []bson.E{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}
	if len(newestFirst) != len(want) {
		t.Fatalf("expected %d sort keys, got %v", len(want), newestFirst)
	}
	for i, e := range want {
		if newestFirst[i].Key != e.Key || newestFirst[i].Value != e.Value {
			t.Fatalf("sort key %d: expected %v, got %v", i, e, newestFirst[i])
		}
	}
}

func TestMongoFeedback_Decode(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{
		"_id":              int64(7),
		"employee_id":      int64(3),
		"manager_id":       int64(1),
		"strengths":        "ships on time",
		"areas_to_improve": "code review depth",
		"sentiment":        bson.M{"name": "POSITIVE"},
		"acknowledged":     true,
		"created_at":       created,
		"updated_at":       created,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var mf mongoFeedback
	if err := bson.Unmarshal(raw, &mf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	f := mf.toDomain()
	if f.ID != 7 || f.EmployeeID != 3 || f.ManagerID != 1 || !f.Acknowledged {
		t.Fatalf("unexpected feedback: %+v", f)
	}
	if f.Sentiment != domain.SentimentPositive {
		t.Fatalf("expected POSITIVE, got %q", f.Sentiment)
	}
	if !f.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %s, got %s", created, f.CreatedAt)
	}
}
