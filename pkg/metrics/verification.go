package metrics

import "github.com/prometheus/client_golang/prometheus"

// VerificationMetrics tracks the outcomes of the clip submission pipeline.
type VerificationMetrics struct {
	submissions *prometheus.CounterVec
	sweptClips  prometheus.Counter
}

// NewVerificationMetrics registers pipeline counters on the provided registerer.
func NewVerificationMetrics(reg prometheus.Registerer) *VerificationMetrics {
	if reg == nil {
		return &VerificationMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "video_submissions_total",
		Help: "Clip submissions by outcome.",
	}, []string{"outcome"})
	swept := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_swept_total",
		Help: "Clips purged by the retention sweeper.",
	})
	reg.MustRegister(submissions, swept)
	return &VerificationMetrics{submissions: submissions, sweptClips: swept}
}

// Submission outcomes used as label values.
const (
	OutcomeAccepted       = "accepted"
	OutcomeDuplicate      = "duplicate"
	OutcomeTooLarge       = "too_large"
	OutcomeStorageFailure = "storage_failure"
	OutcomeRejected       = "rejected"
)

// IncSubmission increments the submission counter for the given outcome.
func (v *VerificationMetrics) IncSubmission(outcome string) {
	if v == nil || v.submissions == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	v.submissions.WithLabelValues(outcome).Inc()
}

// AddSwept records clips removed by a sweep run.
func (v *VerificationMetrics) AddSwept(count int) {
	if v == nil || v.sweptClips == nil || count <= 0 {
		return
	}
	v.sweptClips.Add(float64(count))
}
