package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"talentflow/internal/model"
)

// TimelineRepo handles MongoDB operations for candidate timelines
type TimelineRepo interface {
	Append(ctx context.Context, ev *model.TimelineEvent) error
	ListByCandidate(ctx context.Context, candidateID string) ([]*model.TimelineEvent, error)
}

type timelineRepo struct {
	collection *mongo.Collection
}

// NewTimelineRepo creates a new timeline repository
func NewTimelineRepo(db *mongo.Database) TimelineRepo {
	return &timelineRepo{
		collection: db.Collection("timelines"),
	}
}

func (r *timelineRepo) Append(ctx context.Context, ev *model.TimelineEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, ev)
	return err
}

// ListByCandidate returns events newest first.
func (r *timelineRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.TimelineEvent, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"candidateId": candidateID},
		options.Find().SetSort(bson.M{"at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.TimelineEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
