// Package metrics exposes light hardware activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
)

// Recorder tracks light writes in a dedicated Prometheus registry. It is
// fed from the event bus, so the locked apply path never touches the
// registry directly.
type Recorder struct {
	registry *prometheus.Registry

	applies             *prometheus.CounterVec
	applyErrors         *prometheus.CounterVec
	backlightBrightness prometheus.Gauge
	indicatorLevel      prometheus.Gauge

	unsubscribes []func()
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		applies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightsd_applies_total",
			Help: "Light requests applied to hardware, by light.",
		}, []string{"light"}),
		applyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightsd_apply_errors_total",
			Help: "Light requests that failed to reach hardware, by light.",
		}, []string{"light"}),
		backlightBrightness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lightsd_backlight_brightness",
			Help: "Last brightness written to the backlight sink.",
		}),
		indicatorLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lightsd_indicator_level",
			Help: "Last level written to the indicator LED sink.",
		}),
	}

	r.registry.MustRegister(r.applies, r.applyErrors, r.backlightBrightness, r.indicatorLevel)
	return r
}

// Attach subscribes the recorder to light events on the bus.
func (r *Recorder) Attach(bus *events.Bus) {
	r.unsubscribes = append(r.unsubscribes,
		bus.Subscribe(func(e events.LightAppliedEvent) {
			r.applies.WithLabelValues(e.Light).Inc()
			if e.Light == lights.Backlight {
				r.backlightBrightness.Set(float64(e.Level))
			} else {
				r.indicatorLevel.Set(float64(e.Level))
			}
		}),
		bus.Subscribe(func(e events.LightErrorEvent) {
			r.applyErrors.WithLabelValues(e.Light).Inc()
		}),
	)
}

// Detach removes the bus subscriptions.
func (r *Recorder) Detach() {
	for _, unsub := range r.unsubscribes {
		unsub()
	}
	r.unsubscribes = nil
}

// Handler serves the recorder's registry in Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
