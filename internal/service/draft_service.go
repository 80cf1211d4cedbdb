package service

import (
	"context"
	"sync"
	"time"

	"talentflow/internal/assessment"
	"talentflow/internal/cache"
	"talentflow/internal/model"
)

const defaultDraftWindow = 600 * time.Millisecond

// DraftService owns draft persistence and its write scheduling: save
// intents for the same (job, candidate) pair are collapsed within the
// debounce window and the last writer wins. Persistence failures are
// reported through the error callback; the service never retries.
type DraftService struct {
	drafts  cache.DraftCache
	window  time.Duration
	onError func(error)

	mu      sync.Mutex
	pending map[string]*pendingSave
}

type pendingSave struct {
	timer   *time.Timer
	answers assessment.Answers
}

// NewDraftService creates a new draft service. A zero window disables
// debouncing, useful in tests. onError may be nil.
func NewDraftService(drafts cache.DraftCache, window time.Duration, onError func(error)) *DraftService {
	if window < 0 {
		window = defaultDraftWindow
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &DraftService{
		drafts:  drafts,
		window:  window,
		onError: onError,
		pending: make(map[string]*pendingSave),
	}
}

// Load returns the draft answers for a pair, or an empty map when none.
func (s *DraftService) Load(ctx context.Context, jobID, candidateID string) (assessment.Answers, error) {
	draft, err := s.drafts.Get(ctx, jobID, candidateID)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.Answers == nil {
		return assessment.Answers{}, nil
	}
	return draft.Answers, nil
}

// Save schedules a full overwrite of the draft. Repeated calls within the
// window replace the pending answers and restart the timer; only the last
// snapshot is written.
func (s *DraftService) Save(jobID, candidateID string, answers assessment.Answers) {
	if s.window == 0 {
		s.write(jobID, candidateID, answers)
		return
	}

	key := model.DraftKey(jobID, candidateID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.answers = answers
		p.timer.Reset(s.window)
		return
	}

	p := &pendingSave{answers: answers}
	p.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		// Clear or Flush may have removed the entry after this timer
		// already fired; writing then would resurrect a cleared draft.
		if s.pending[key] != p {
			s.mu.Unlock()
			return
		}
		answers := p.answers
		delete(s.pending, key)
		s.mu.Unlock()
		s.write(jobID, candidateID, answers)
	})
	s.pending[key] = p
}

// Flush writes any pending draft for the pair immediately.
func (s *DraftService) Flush(jobID, candidateID string) {
	key := model.DraftKey(jobID, candidateID)
	s.mu.Lock()
	p, ok := s.pending[key]
	if ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if ok {
		s.write(jobID, candidateID, p.answers)
	}
}

// Clear cancels any pending save for the pair, then deletes the stored
// draft. Called once after a successful submission so a trailing debounce
// can never resurrect the draft.
func (s *DraftService) Clear(ctx context.Context, jobID, candidateID string) error {
	key := model.DraftKey(jobID, candidateID)
	s.mu.Lock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()
	return s.drafts.Delete(ctx, jobID, candidateID)
}

func (s *DraftService) write(jobID, candidateID string, answers assessment.Answers) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.drafts.Set(ctx, &model.Draft{
		JobID:       jobID,
		CandidateID: candidateID,
		Answers:     answers,
	})
	if err != nil {
		s.onError(err)
	}
}
