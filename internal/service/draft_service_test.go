package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/assessment"
	"talentflow/internal/model"
)

type stubDraftCache struct {
	mu     sync.Mutex
	drafts map[string]*model.Draft
	sets   int
	setErr error
}

func newStubDraftCache() *stubDraftCache {
	return &stubDraftCache{drafts: make(map[string]*model.Draft)}
}

func (c *stubDraftCache) Get(_ context.Context, jobID, candidateID string) (*model.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[model.DraftKey(jobID, candidateID)]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (c *stubDraftCache) Set(_ context.Context, draft *model.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	draft.Key = model.DraftKey(draft.JobID, draft.CandidateID)
	draft.UpdatedAt = time.Now()
	cp := *draft
	c.drafts[cp.Key] = &cp
	return nil
}

func (c *stubDraftCache) Delete(_ context.Context, jobID, candidateID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, model.DraftKey(jobID, candidateID))
	return nil
}

func (c *stubDraftCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

func TestDraftRoundTrip(t *testing.T) {
	svc := NewDraftService(newStubDraftCache(), 0, nil)
	ctx := context.Background()

	answers := assessment.Answers{"q1": "Yes", "q2": []string{"Go"}}
	svc.Save("job1", "cand1", answers)

	loaded, err := svc.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.Equal(t, answers, loaded)

	require.NoError(t, svc.Clear(ctx, "job1", "cand1"))
	loaded, err = svc.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.Equal(t, assessment.Answers{}, loaded)
}

func TestDraftLoadMissingIsEmpty(t *testing.T) {
	svc := NewDraftService(newStubDraftCache(), 0, nil)

	loaded, err := svc.Load(context.Background(), "job1", "nobody")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestDraftSaveCollapsesBursts(t *testing.T) {
	cache := newStubDraftCache()
	svc := NewDraftService(cache, 20*time.Millisecond, nil)

	svc.Save("job1", "cand1", assessment.Answers{"q1": "a"})
	svc.Save("job1", "cand1", assessment.Answers{"q1": "ab"})
	svc.Save("job1", "cand1", assessment.Answers{"q1": "abc"})

	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 1, cache.setCount(), "burst collapses into one write")
	loaded, err := svc.Load(context.Background(), "job1", "cand1")
	require.NoError(t, err)
	assert.Equal(t, assessment.Answers{"q1": "abc"}, loaded, "last writer wins")
}

func TestDraftSaveSeparateKeysDoNotCollapse(t *testing.T) {
	cache := newStubDraftCache()
	svc := NewDraftService(cache, 20*time.Millisecond, nil)

	svc.Save("job1", "cand1", assessment.Answers{"q1": "a"})
	svc.Save("job1", "cand2", assessment.Answers{"q1": "b"})

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 2, cache.setCount())
}

func TestDraftClearCancelsPendingSave(t *testing.T) {
	cache := newStubDraftCache()
	svc := NewDraftService(cache, 20*time.Millisecond, nil)
	ctx := context.Background()

	svc.Save("job1", "cand1", assessment.Answers{"q1": "stale"})
	require.NoError(t, svc.Clear(ctx, "job1", "cand1"))

	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 0, cache.setCount(), "pending debounce must not fire after clear")
	loaded, err := svc.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDraftClearWinsAgainstFiredTimer(t *testing.T) {
	cache := newStubDraftCache()
	svc := NewDraftService(cache, 100*time.Microsecond, nil)
	ctx := context.Background()

	// With a window this short the timer routinely fires before Clear
	// runs, so timer.Stop alone cannot protect the delete. The fired
	// callback must notice the entry is gone and skip its write.
	for i := 0; i < 200; i++ {
		svc.Save("job1", "cand1", assessment.Answers{"q1": "stale"})
		time.Sleep(100 * time.Microsecond)
		require.NoError(t, svc.Clear(ctx, "job1", "cand1"))

		time.Sleep(time.Millisecond)
		loaded, err := svc.Load(ctx, "job1", "cand1")
		require.NoError(t, err)
		require.Empty(t, loaded, "cleared draft must stay cleared")
	}
}

func TestDraftFlushWritesImmediately(t *testing.T) {
	cache := newStubDraftCache()
	svc := NewDraftService(cache, time.Hour, nil)

	svc.Save("job1", "cand1", assessment.Answers{"q1": "now"})
	svc.Flush("job1", "cand1")

	loaded, err := svc.Load(context.Background(), "job1", "cand1")
	require.NoError(t, err)
	assert.Equal(t, assessment.Answers{"q1": "now"}, loaded)
}

func TestDraftSaveErrorReachesCallback(t *testing.T) {
	cache := newStubDraftCache()
	cache.setErr = errors.New("redis down")

	errs := make(chan error, 1)
	svc := NewDraftService(cache, 0, func(err error) { errs <- err })

	svc.Save("job1", "cand1", assessment.Answers{"q1": "x"})

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "redis down")
	case <-time.After(time.Second):
		t.Fatal("error callback was not invoked")
	}
}
