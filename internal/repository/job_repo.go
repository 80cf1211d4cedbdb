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

// JobListOptions filters and pages the jobs listing.
type JobListOptions struct {
	Search   string
	Status   model.JobStatus
	Sort     string // "order", "title" or "-title"
	Page     int
	PageSize int
}

// JobRepo handles MongoDB operations for job postings
type JobRepo interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	GetBySlug(ctx context.Context, slug string) (*model.Job, error)
	List(ctx context.Context, opts JobListOptions) ([]*model.Job, int64, error)
	ListOrdered(ctx context.Context) ([]*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	SetOrder(ctx context.Context, id string, order int) error
	Count(ctx context.Context) (int64, error)
}

type jobRepo struct {
	collection *mongo.Collection
}

// NewJobRepo creates a new job repository
func NewJobRepo(db *mongo.Database) JobRepo {
	return &jobRepo{
		collection: db.Collection("jobs"),
	}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *jobRepo) GetBySlug(ctx context.Context, slug string) (*model.Job, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *jobRepo) findOne(ctx context.Context, filter bson.M) (*model.Job, error) {
	var job model.Job
	err := r.collection.FindOne(ctx, filter).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, opts JobListOptions) ([]*model.Job, int64, error) {
	filter := bson.M{}
	if opts.Search != "" {
		rx := searchRegex(opts.Search)
		filter["$or"] = bson.A{bson.M{"title": rx}, bson.M{"slug": rx}}
	}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort := bson.D{{Key: "order", Value: 1}}
	switch opts.Sort {
	case "title":
		sort = bson.D{{Key: "title", Value: 1}}
	case "-title":
		sort = bson.D{{Key: "title", Value: -1}}
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(sort).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var jobs []*model.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListOrdered returns every job sorted by board order, used by reorder.
func (r *jobRepo) ListOrdered(ctx context.Context) ([]*model.Job, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*model.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	job.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": job.ID}, job)
	return err
}

func (r *jobRepo) SetOrder(ctx context.Context, id string, order int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"order": order, "updatedAt": time.Now()},
	})
	return err
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
