package metrics

import (
	"github.com/delaneyj/signalgraph/i18n"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "signalgraph").
	Namespace string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets of the drain size histogram.
	Buckets []float64

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Collector records graph and catalog activity. It satisfies both
// reactive.Observer and i18n.Observer.
type Collector struct {
	MemoRecomputations *prometheus.CounterVec
	MemoErrors         prometheus.Counter
	EffectRuns         prometheus.Counter
	EffectErrors       prometheus.Counter
	DrainSize          prometheus.Histogram

	MessagesParsed   *prometheus.CounterVec
	MessagesReused   *prometheus.CounterVec
	LocaleResolution *prometheus.CounterVec
}

var (
	_ reactive.Observer = (*Collector)(nil)
	_ i18n.Observer     = (*Collector)(nil)
)

func New(opts ...Option) *Collector {
	cfg := Config{
		Namespace: "signalgraph",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Collector{
		MemoRecomputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "reactive",
			Name:        "memo_recomputations_total",
			Help:        "Memo recomputations by whether the value changed",
			ConstLabels: cfg.ConstLabels,
		}, []string{"changed"}),

		MemoErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "reactive",
			Name:        "memo_errors_total",
			Help:        "Memo recomputations that cached an error",
			ConstLabels: cfg.ConstLabels,
		}),

		EffectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "reactive",
			Name:        "effect_runs_total",
			Help:        "Effect executions",
			ConstLabels: cfg.ConstLabels,
		}),

		EffectErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "reactive",
			Name:        "effect_errors_total",
			Help:        "Effect executions that failed",
			ConstLabels: cfg.ConstLabels,
		}),

		DrainSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "reactive",
			Name:        "drain_effects",
			Help:        "Effects run per queue drain",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),

		MessagesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "i18n",
			Name:        "messages_parsed_total",
			Help:        "Raw translations parsed",
			ConstLabels: cfg.ConstLabels,
		}, []string{"locale", "namespace"}),

		MessagesReused: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "i18n",
			Name:        "messages_reused_total",
			Help:        "Translations served from the parse cache",
			ConstLabels: cfg.ConstLabels,
		}, []string{"locale", "namespace"}),

		LocaleResolution: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "i18n",
			Name:        "locale_resolutions_total",
			Help:        "Translation lookups by resolved locale",
			ConstLabels: cfg.ConstLabels,
		}, []string{"resolved", "fallback"}),
	}
}

func (c *Collector) MemoRecomputed(_ string, changed bool, err error) {
	if err != nil {
		c.MemoErrors.Inc()
	}
	c.MemoRecomputations.WithLabelValues(boolLabel(changed)).Inc()
}

func (c *Collector) EffectRan(_ string, err error) {
	c.EffectRuns.Inc()
	if err != nil {
		c.EffectErrors.Inc()
	}
}

func (c *Collector) DrainCompleted(ran int) {
	c.DrainSize.Observe(float64(ran))
}

func (c *Collector) MessagesLoaded(locale, namespace string, parsed, cached int) {
	c.MessagesParsed.WithLabelValues(locale, namespace).Add(float64(parsed))
	c.MessagesReused.WithLabelValues(locale, namespace).Add(float64(cached))
}

func (c *Collector) LocaleResolved(_, resolved string, fallback bool) {
	c.LocaleResolution.WithLabelValues(resolved, boolLabel(fallback)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
