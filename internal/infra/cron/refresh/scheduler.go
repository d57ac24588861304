// refresh periodically refreshes the backing indices so that searches see
// recent writes without every request paying for an explicit refresh. The
// refresh call is idempotent, so running it on every node is harmless.
package refresh

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/tracing"
)

type Scheduler interface {
	// Start begins refreshing at the configured interval
	Start()
	// Stop cancels future refreshes; in-flight ones finish
	Stop()
}

type schedulerImpl struct {
	cron *cron.Cron

	documentsService document.Service

	tracer tracing.Tracer

	runInterval time.Duration

	mu sync.Mutex
}

// Returns the default implementation of a Scheduler that delegates to the
// standard robfig/cron
func NewScheduler(documentsService document.Service, runInterval time.Duration, tracer tracing.Tracer) Scheduler {
	return &schedulerImpl{
		cron:             cron.New(cron.WithLocation(time.UTC)),
		documentsService: documentsService,
		tracer:           tracer,
		runInterval:      runInterval,
		mu:               sync.Mutex{},
	}
}

func (i *schedulerImpl) Start() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if log.Info().Enabled() {
		log.Info().
			Dur("run_interval", i.runInterval).
			Msg("Scheduling periodic index refresh")
	}

	var cronJob cron.Job = cron.FuncJob(func() {
		if log.Debug().Enabled() {
			log.Debug().Msg("Refreshing indices")
		}

		tx := i.tracer.BackgroundTx("index-refresh")
		ctx := tx.Context()

		if err := i.documentsService.Refresh(ctx); err != nil {
			// refreshes are cheap to redo, logging is enough
			log.Error().
				Err(err).
				Msg("Failed to refresh indices")
		}
		tx.End()
	})
	cronJob = cron.NewChain(
		cron.Recover(zeroLogCronLogger{}),
		cron.SkipIfStillRunning(zeroLogCronLogger{}),
	).Then(cronJob)

	if _, err := i.cron.AddJob(fmt.Sprintf("@every %s", i.runInterval), cronJob); err != nil {
		log.Error().Err(err).Msg("Failed to schedule index refresh")
		return
	}
	i.cron.Start()
}

func (i *schedulerImpl) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cron.Stop()
}

type zeroLogCronLogger struct {
}

func (z zeroLogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	if log.Info().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Info().Fields(formatted).Msg(msg)
	}
}

func (z zeroLogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if log.Error().Enabled() {
		formatted := formatTimeValues(keysAndValues)
		log.Error().Err(err).Fields(formatted).Msg(msg)
	}
}

// formatTimeValues formats any time.Time values as RFC3339 *and*
// returns the even-odd idx key-value pair slice as a map
func formatTimeValues(keysAndValues []interface{}) map[string]interface{} {
	formattedArgs := make(map[string]interface{}, len(keysAndValues)/2)
	for idx := 0; idx < len(keysAndValues); idx += 2 {
		var key string
		if s, ok := keysAndValues[idx].(string); ok {
			key = s
		} else {
			key = fmt.Sprint(keysAndValues[idx])
		}
		valueIdx := idx + 1
		if len(keysAndValues) > valueIdx {
			value := keysAndValues[valueIdx]
			if t, ok := value.(time.Time); ok {
				value = t.Format(time.RFC3339)
			}
			formattedArgs[key] = value
		}
	}
	return formattedArgs
}
