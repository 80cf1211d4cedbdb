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

// SubmissionRepo handles MongoDB operations for submissions. Records are
// append-only; there is deliberately no update or delete.
type SubmissionRepo interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByJobID(ctx context.Context, jobID string) ([]*model.Submission, error)
	GetByCandidate(ctx context.Context, jobID, candidateID string) ([]*model.Submission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, s *model.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *submissionRepo) GetByJobID(ctx context.Context, jobID string) ([]*model.Submission, error) {
	return r.find(ctx, bson.M{"jobId": jobID})
}

func (r *submissionRepo) GetByCandidate(ctx context.Context, jobID, candidateID string) ([]*model.Submission, error) {
	return r.find(ctx, bson.M{"jobId": jobID, "candidateId": candidateID})
}

func (r *submissionRepo) find(ctx context.Context, filter bson.M) ([]*model.Submission, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"submittedAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
