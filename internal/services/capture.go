package services

import (
	"context"
	"errors"
	"nutriscan/internal/analysis"
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

var (
	ErrLocked           = errors.New("analysis quota exhausted")
	ErrCaptureInFlight  = errors.New("an analysis is already running")
	ErrCaptureAbandoned = errors.New("analysis was cancelled")
	ErrNoDraft          = errors.New("no meal draft pending")
)

type CaptureServiceInterface interface {
	Analyze(ctx context.Context, image []byte, imageRef string) (*models.MealDraft, error)
	Draft() (*models.MealDraft, error)
	AdjustWeight(index int, grams float64) (*models.MealDraft, error)
	Cancel()
	Commit() (*models.MealRecord, error)
}

// CaptureService turns a photo into a reviewable draft and commits it as a
// meal. Only one analysis runs at a time; cancelling bumps the generation so
// a late result is dropped.
type CaptureService struct {
	analyzer analysis.AnalyzerInterface
	store    LocalStoreInterface
	session  SessionServiceInterface
	cache    providers.CacheProviderInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger

	inFlight   atomic.Bool
	generation atomic.Uint64

	mu     sync.Mutex
	draft  *models.MealDraft
	cancel context.CancelFunc
}

func NewCaptureService(
	analyzer analysis.AnalyzerInterface,
	store LocalStoreInterface,
	session SessionServiceInterface,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) CaptureServiceInterface {
	return &CaptureService{
		analyzer: analyzer,
		store:    store,
		session:  session,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

func imageKey(image []byte) string {
	return "scan:" + strconv.FormatUint(xxhash.Sum64(image), 16)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, analysis.ErrTimeout):
		return "timeout"
	case errors.Is(err, analysis.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, analysis.ErrIncompleteData):
		return "incomplete"
	default:
		return "error"
	}
}

// scan serves identical images from the cache before calling the service.
func (s *CaptureService) scan(ctx context.Context, image []byte) (*models.ScanResult, bool, error) {
	key := imageKey(image)
	if cached, ok := s.cache.Get(key); ok {
		var result models.ScanResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, true, nil
		}
	}

	result, err := s.analyzer.Analyze(ctx, image, "")
	if err != nil {
		return nil, false, err
	}
	if encoded, err := json.Marshal(result); err == nil {
		s.cache.Set(key, encoded)
	}
	return result, false, nil
}

func (s *CaptureService) Analyze(ctx context.Context, image []byte, imageRef string) (*models.MealDraft, error) {
	if s.session.IsLocked() {
		s.metrics.IncAnalysis("locked")
		return nil, ErrLocked
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCaptureInFlight
	}
	defer s.inFlight.Store(false)

	gen := s.generation.Load()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	result, cached, err := s.scan(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = nil

	if s.generation.Load() != gen {
		s.metrics.IncAnalysis("abandoned")
		s.logger.Infof(providers.TypeAnalysis, "Discarding analysis result after cancel")
		return nil, ErrCaptureAbandoned
	}
	if err != nil {
		s.metrics.IncAnalysis(outcome(err))
		return nil, err
	}
	if cached {
		s.metrics.IncAnalysis("cached")
	} else {
		s.metrics.IncAnalysis(outcome(nil))
	}

	s.draft = models.NewMealDraft(result, imageRef)
	return s.draft.Clone(), nil
}

func (s *CaptureService) Draft() (*models.MealDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, ErrNoDraft
	}
	return s.draft.Clone(), nil
}

func (s *CaptureService) AdjustWeight(index int, grams float64) (*models.MealDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, ErrNoDraft
	}
	if err := s.draft.AdjustWeight(index, grams); err != nil {
		return nil, err
	}
	return s.draft.Clone(), nil
}

// Cancel drops the pending draft and abandons a running analysis.
func (s *CaptureService) Cancel() {
	s.generation.Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.draft = nil
}

func (s *CaptureService) Commit() (*models.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, ErrNoDraft
	}
	if s.session.IsLocked() {
		return nil, ErrLocked
	}

	record := s.store.AddMeal(s.draft.Candidate())
	s.session.RecordAnalysisUsed()
	s.draft = nil
	s.logger.Infof(providers.TypeAnalysis, "Meal %q committed (%.0f kcal)", record.Name, record.Nutrition.Calories)
	return &record, nil
}
