package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"talentflow/internal/model"
)

// AssessmentRepo handles MongoDB operations for assessments, keyed by job id
type AssessmentRepo interface {
	Get(ctx context.Context, jobID string) (*model.Assessment, error)
	Put(ctx context.Context, a *model.Assessment) error
	Delete(ctx context.Context, jobID string) error
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Get(ctx context.Context, jobID string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Put replaces the stored assessment wholesale, creating it when absent.
func (r *assessmentRepo) Put(ctx context.Context, a *model.Assessment) error {
	a.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": a.JobID}, a, options.Replace().SetUpsert(true))
	return err
}

func (r *assessmentRepo) Delete(ctx context.Context, jobID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": jobID})
	return err
}
