package srv

import (
	"context"
	"time"

	"github.com/jkruckivey/assessments/pkg/log"
)

// DefaultShutdownTimeout bounds how long ShutdownServices waits for each service.
const DefaultShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse
// start order. Each service gets its own timeout, detached from ctx.
func ShutdownServices(ctx context.Context, services []Service, timeout time.Duration) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	logger.Info().Msg("shutting down")

	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	base := context.WithoutCancel(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		sctx, cancel := context.WithTimeout(base, timeout)
		if err := service.Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", service)
		}
		cancel()
	}
}
