package provider

import (
	"context"
	"log/slog"

	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/errs"
)

// MultiSource queries each configured provider independently. It returns
// every successful observation; choosing the best one is the caller's job.
// An error is returned only when every provider failed for the route.
type MultiSource struct {
	sources []PriceSource
	logger  *slog.Logger
}

func NewMultiSource(logger *slog.Logger, sources ...PriceSource) *MultiSource {
	return &MultiSource{sources: sources, logger: logger}
}

func (m *MultiSource) FetchAll(ctx context.Context, q route.Query) ([]route.ObservedPrice, error) {
	if len(m.sources) == 0 {
		return nil, errs.New("no price sources configured")
	}

	var (
		observations []route.ObservedPrice
		firstErr     error
	)
	for _, src := range m.sources {
		observed, err := src.Fetch(ctx, q)
		if err != nil {
			m.logger.Warn("price source failed for route",
				"source", src.Name(),
				"route", q.Key(),
				"error", err.Error())
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		observations = append(observations, observed)
	}

	if len(observations) == 0 {
		return nil, firstErr
	}
	return observations, nil
}
