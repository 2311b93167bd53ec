package telemetry

import (
	"github.com/storekit/storefront/internal/observability"
)

type provider struct {
	tracer     observability.TraceCtx
	logger     observability.Logger
	counters   map[string]observability.Counter
	histograms map[string]observability.Histogram
}

// New assembles a Telemetry provider from the supplied tracer, logger
// and pre-registered metric instruments. Nil instruments fall back to
// nops so callers never have to nil-check.
func New(
	tracer observability.TraceCtx,
	logger observability.Logger,
	counters map[string]observability.Counter,
	histograms map[string]observability.Histogram,
) observability.Telemetry {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	p := &provider{
		tracer:     tracer,
		logger:     logger,
		counters:   make(map[string]observability.Counter, len(counters)),
		histograms: make(map[string]observability.Histogram, len(histograms)),
	}
	for name, c := range counters {
		if c != nil {
			p.counters[name] = c
		}
	}
	for name, h := range histograms {
		if h != nil {
			p.histograms[name] = h
		}
	}
	return p
}

func (p *provider) Tracer() observability.TraceCtx { return p.tracer }

func (p *provider) Logger() observability.Logger { return p.logger }

func (p *provider) Counter(name string) observability.Counter {
	if c, ok := p.counters[name]; ok {
		return c
	}
	return observability.NopCounter()
}

func (p *provider) Histogram(name string) observability.Histogram {
	if h, ok := p.histograms[name]; ok {
		return h
	}
	return observability.NopHistogram()
}
