package storage

import (
	"errors"
	"nutriscan/internal/providers"
	"nutriscan/internal/services"
	"nutriscan/internal/storage/interfaces"
	"nutriscan/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler runs the expiry sweep and the periodic flush of the durable store.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   services.LocalStoreInterface
	durable interfaces.DurableStore
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Storage.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.flush(); err != nil {
			s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
		}
	})

	s.cron.AddFunc(gron.Every(s.config.Retention.SweepInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.sweep()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the durable store and drops whatever expired while the app
// was not running. A corrupt store is logged and replaced by an empty one.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if err := s.durable.Load(); err != nil {
		if !errors.Is(err, ErrCorruptStore) {
			return err
		}
		s.logger.Errorf(providers.TypeStore, "Starting with an empty store: %s", err)
	}
	s.sweep()
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Persisting store...")
	err := s.flush()
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) flush() error {
	started := time.Now()
	if err := s.durable.Flush(); err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(started))
	return nil
}

func (s *Scheduler) sweep() {
	removed := s.store.CleanExpiredData()
	if removed.Meals > 0 || removed.WaterEntries > 0 {
		s.logger.Infof(providers.TypeStore, "Expired %d meals and %d water entries", removed.Meals, removed.WaterEntries)
	}
	s.metrics.AddSweptRecords(services.KeyMeals, removed.Meals)
	s.metrics.AddSweptRecords(services.KeyWaterLog, removed.WaterEntries)

	stats := s.store.GetStats()
	s.metrics.SetRecordsTotal(services.KeyMeals, stats.Meals)
	s.metrics.SetRecordsTotal(services.KeyWaterLog, stats.WaterEntries)
}

func NewScheduler(config *structures.Config, logger providers.Logger, store services.LocalStoreInterface, durable interfaces.DurableStore, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		durable: durable,
		metrics: metrics,
	}
}
