package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	JobEraseOrphanFiles   = "erase_orphan_files"
	JobCalculateLikeCount = "calculate_movie_like_count"

	// temp uploads older than this are considered abandoned
	orphanAge  = 24 * time.Hour
	jobTimeout = 5 * time.Minute
)

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	storage storage.Storage
	movies  repository.MovieRepository
	log     *zap.Logger
	now     func() time.Time
}

func New(config utils.CronConfig, storage storage.Storage, movies repository.MovieRepository, log *zap.Logger) (*Scheduler, error) {
	log = log.With(zap.String("component", "scheduler"))
	cronLog := cronLogger{log.Sugar()}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		storage: storage,
		movies:  movies,
		log:     log,
		now:     time.Now,
	}

	jobs := []struct {
		name string
		spec string
		fn   func(context.Context) error
	}{
		{JobEraseOrphanFiles, config.OrphanFiles, s.EraseOrphanFiles},
		{JobCalculateLikeCount, config.LikeCounts, s.CalculateMovieLikeCount},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, func() { s.run(job.name, job.fn) }); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", job.name, job.spec, err)
		}
		log.Info("Job scheduled", zap.String("job", job.name), zap.String("spec", job.spec))
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// run executes one job; failures are logged and the next tick tries again.
func (s *Scheduler) run(name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	middleware.RecordJobRun(name, duration, err == nil)

	if err != nil {
		s.log.Error("Job failed", zap.String("job", name), zap.Error(err), zap.Duration("duration", duration))
		return
	}
	s.log.Debug("Job finished", zap.String("job", name), zap.Duration("duration", duration))
}

// EraseOrphanFiles deletes temp uploads named "<id>_<unixMillis>" that are
// older than a day, or whose timestamp does not parse. Other names are kept.
func (s *Scheduler) EraseOrphanFiles(ctx context.Context) error {
	files, err := s.storage.ListTemp(ctx)
	if err != nil {
		return fmt.Errorf("list temp files: %w", err)
	}

	now := s.now()
	deleted := 0
	for _, name := range files {
		ts, ok, err := utils.UploadTimestamp(name)
		if !ok {
			continue
		}
		if err == nil && now.Sub(ts) <= orphanAge {
			continue
		}

		if err := s.storage.DeleteTemp(ctx, name); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("delete temp file %s: %w", name, err)
		}
		deleted++
	}

	s.log.Info("Orphan files erased", zap.Int("deleted", deleted), zap.Int("scanned", len(files)))
	return nil
}

// CalculateMovieLikeCount recomputes like and dislike counters from the votes.
func (s *Scheduler) CalculateMovieLikeCount(ctx context.Context) error {
	updated, err := s.movies.RecalculateLikeCounts(ctx)
	if err != nil {
		return fmt.Errorf("recalculate like counts: %w", err)
	}

	s.log.Debug("Movie like counts recalculated", zap.Int64("movies", updated))
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
