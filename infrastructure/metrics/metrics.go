// Package metrics exports annotation activity as Prometheus metrics.
// The Recorder observes the event bus; it never drives the session.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"framer-go/core/event"
	"framer-go/core/eventbus"
)

// Save results used as label values.
const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// Recorder holds the annotation metrics registered on one registry.
type Recorder struct {
	imagesLoaded     prometheus.Counter
	imagesCommitted  prometheus.Counter
	regionsAdded     *prometheus.CounterVec
	regionsDeleted   prometheus.Counter
	promptsCancelled prometheus.Counter
	regionsDiscarded prometheus.Counter
	regionsPerImage  prometheus.Histogram
	saves            *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
}

// NewRecorder registers the annotation metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		imagesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "framer_images_loaded_total",
			Help: "Total number of images shown for annotation",
		}),
		imagesCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "framer_images_committed_total",
			Help: "Total number of images committed to the dataset record",
		}),
		regionsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framer_regions_added_total",
				Help: "Total number of labeled regions added",
			},
			[]string{"label"},
		),
		regionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "framer_regions_deleted_total",
			Help: "Total number of regions deleted",
		}),
		promptsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "framer_label_prompts_cancelled_total",
			Help: "Total number of label prompts dismissed without a label",
		}),
		regionsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "framer_regions_discarded_total",
			Help: "Total number of drags too small to become a region",
		}),
		regionsPerImage: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "framer_regions_per_image",
			Help:    "Number of regions in each committed image",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framer_dataset_saves_total",
				Help: "Total number of dataset record writes",
			},
			[]string{"result"},
		),
		sessionsFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framer_sessions_finished_total",
				Help: "Total number of finished annotation sessions",
			},
			[]string{"reason"},
		),
	}
}

// Attach subscribes the recorder to bus and returns the subscription ID.
func (r *Recorder) Attach(bus eventbus.EventBus) string {
	return bus.Subscribe(r.Observe)
}

// Observe updates the metrics for one event.
func (r *Recorder) Observe(e event.Event) {
	switch ev := e.(type) {
	case *event.ImageLoaded:
		r.imagesLoaded.Inc()
	case *event.ImageCommitted:
		r.imagesCommitted.Inc()
		r.regionsPerImage.Observe(float64(ev.Regions))
	case *event.RegionAdded:
		r.regionsAdded.WithLabelValues(ev.Label).Inc()
	case *event.RegionDeleted:
		r.regionsDeleted.Inc()
	case *event.LabelPromptCancelled:
		r.promptsCancelled.Inc()
	case *event.RegionDiscarded:
		r.regionsDiscarded.Inc()
	case *event.DatasetSaved:
		if ev.Error != nil {
			r.saves.WithLabelValues(resultFailed).Inc()
		} else {
			r.saves.WithLabelValues(resultOK).Inc()
		}
	case *event.SessionFinished:
		r.sessionsFinished.WithLabelValues(ev.Reason.String()).Inc()
	}
}
