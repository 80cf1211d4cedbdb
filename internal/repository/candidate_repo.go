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

// CandidateListOptions filters and pages the candidates listing.
type CandidateListOptions struct {
	Search   string
	Stage    model.Stage
	JobID    string
	Page     int
	PageSize int
}

// CandidateRepo handles MongoDB operations for candidates
type CandidateRepo interface {
	Create(ctx context.Context, c *model.Candidate) error
	GetByID(ctx context.Context, id string) (*model.Candidate, error)
	List(ctx context.Context, opts CandidateListOptions) ([]*model.Candidate, int64, error)
	Patch(ctx context.Context, id string, fields bson.M) (*model.Candidate, error)
}

type candidateRepo struct {
	collection *mongo.Collection
}

// NewCandidateRepo creates a new candidate repository
func NewCandidateRepo(db *mongo.Database) CandidateRepo {
	return &candidateRepo{
		collection: db.Collection("candidates"),
	}
}

func (r *candidateRepo) Create(ctx context.Context, c *model.Candidate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, c)
	return err
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) List(ctx context.Context, opts CandidateListOptions) ([]*model.Candidate, int64, error) {
	filter := bson.M{}
	if opts.Search != "" {
		rx := searchRegex(opts.Search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"email": rx}}
	}
	if opts.Stage != "" {
		filter["stage"] = opts.Stage
	}
	if opts.JobID != "" {
		filter["jobId"] = opts.JobID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.M{"name": 1}).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var candidates []*model.Candidate
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

// Patch applies a partial update and returns the updated candidate.
func (r *candidateRepo) Patch(ctx context.Context, id string, fields bson.M) (*model.Candidate, error) {
	var c model.Candidate
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
