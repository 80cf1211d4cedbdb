package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talentflow/internal/model"
)

// DraftCache handles Redis persistence for in-progress answer drafts,
// keyed per (job, candidate) pair. Every Set overwrites the draft fully;
// last write wins.
type DraftCache interface {
	Get(ctx context.Context, jobID, candidateID string) (*model.Draft, error)
	Set(ctx context.Context, draft *model.Draft) error
	Delete(ctx context.Context, jobID, candidateID string) error
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a new draft cache. Drafts are kept for 30 days so
// an abandoned run eventually expires on its own.
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func (c *draftCache) key(jobID, candidateID string) string {
	return fmt.Sprintf("draft:%s:%s", jobID, candidateID)
}

func (c *draftCache) Get(ctx context.Context, jobID, candidateID string) (*model.Draft, error) {
	data, err := c.client.Get(ctx, c.key(jobID, candidateID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *draftCache) Set(ctx context.Context, draft *model.Draft) error {
	draft.Key = model.DraftKey(draft.JobID, draft.CandidateID)
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(draft.JobID, draft.CandidateID), data, c.ttl).Err()
}

func (c *draftCache) Delete(ctx context.Context, jobID, candidateID string) error {
	return c.client.Del(ctx, c.key(jobID, candidateID)).Err()
}
