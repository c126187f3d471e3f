package search

import (
	"context"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HospitalSource lists every hospital with its stock for a full re-index.
type HospitalSource interface {
	ListAllWithStock(ctx context.Context) ([]entity.Hospital, error)
}

// Reindexer periodically rewrites the hospitals index from the database so
// stock changes and missed writes converge.
type Reindexer struct {
	cron   *cron.Cron
	source HospitalSource
	index  HospitalIndex
	log    *zap.Logger
}

func NewReindexer(source HospitalSource, index HospitalIndex, log *zap.Logger) *Reindexer {
	return &Reindexer{
		cron:   cron.New(),
		source: source,
		index:  index,
		log:    log,
	}
}

// Schedule registers the job with a cron spec such as "@every 6h".
func (r *Reindexer) Schedule(spec string) error {
	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := r.RunOnce(ctx); err != nil {
			r.log.Error("hospital reindex failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	r.log.Info("hospital reindex scheduled", zap.String("cron", spec))
	return nil
}

func (r *Reindexer) RunOnce(ctx context.Context) (int, error) {
	hospitals, err := r.source.ListAllWithStock(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.index.IndexHospitals(hospitals...); err != nil {
		return 0, err
	}

	r.log.Info("hospital reindex completed", zap.Int("count", len(hospitals)))
	return len(hospitals), nil
}

func (r *Reindexer) Start() {
	r.cron.Start()
}

func (r *Reindexer) Stop() {
	<-r.cron.Stop().Done()
}
