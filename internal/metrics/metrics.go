package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PoluyanbIch/BreadBot/internal/service"
)

// Metrics собирает счетчики бота и реализует service.QuizObserver
type Metrics struct {
	registry *prometheus.Registry

	quizStarted   prometheus.Counter
	quizAnswers   *prometheus.CounterVec
	quizFinished  *prometheus.CounterVec
	quizCancelled prometheus.Counter
	quizAborted   prometheus.Counter
	updates       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		quizStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "breadbot_quiz_started_total",
			Help: "Total number of started quizzes",
		}),
		quizAnswers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbot_quiz_answers_total",
			Help: "Quiz answers by result",
		}, []string{"result"}),
		quizFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbot_quiz_finished_total",
			Help: "Finished quizzes by outcome",
		}, []string{"outcome"}),
		quizCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "breadbot_quiz_cancelled_total",
			Help: "Total number of cancelled quizzes",
		}),
		quizAborted: factory.NewCounter(prometheus.CounterOpts{
			Name: "breadbot_quiz_aborted_total",
			Help: "Quizzes aborted because of internal errors",
		}),
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbot_telegram_updates_total",
			Help: "Telegram updates by kind",
		}, []string{"kind"}),
	}
}

// TrackActiveSessions публикует число незавершенных тестов
func (m *Metrics) TrackActiveSessions(count func() int) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "breadbot_quiz_active_sessions",
		Help: "Quizzes currently awaiting an answer",
	}, func() float64 { return float64(count()) })
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) UpdateReceived(kind string) {
	m.updates.WithLabelValues(kind).Inc()
}

func (m *Metrics) QuizStarted()    { m.quizStarted.Inc() }
func (m *Metrics) AnswerAccepted() { m.quizAnswers.WithLabelValues("accepted").Inc() }
func (m *Metrics) AnswerRejected() { m.quizAnswers.WithLabelValues("rejected").Inc() }
func (m *Metrics) QuizCancelled()  { m.quizCancelled.Inc() }
func (m *Metrics) QuizAborted()    { m.quizAborted.Inc() }

func (m *Metrics) QuizFinished(outcome service.Outcome) {
	label := outcome.Label
	if !outcome.Matched {
		label = "default"
	}
	m.quizFinished.WithLabelValues(label).Inc()
}

var _ service.QuizObserver = (*Metrics)(nil)
