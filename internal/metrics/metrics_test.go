package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/PoluyanbIch/BreadBot/internal/service"
)

func TestMetricsCountQuizEvents(t *testing.T) {
	m := New()

	m.QuizStarted()
	m.AnswerAccepted()
	m.AnswerAccepted()
	m.AnswerRejected()
	m.QuizFinished(service.Outcome{Label: "багет", Matched: true})
	m.QuizFinished(service.Outcome{Label: "участник"})
	m.QuizCancelled()

	if got := testutil.ToFloat64(m.quizStarted); got != 1 {
		t.Fatalf("started = %v", got)
	}
	if got := testutil.ToFloat64(m.quizAnswers.WithLabelValues("accepted")); got != 2 {
		t.Fatalf("accepted = %v", got)
	}
	if got := testutil.ToFloat64(m.quizFinished.WithLabelValues("default")); got != 1 {
		t.Fatalf("default outcome = %v", got)
	}
	if got := testutil.ToFloat64(m.quizFinished.WithLabelValues("багет")); got != 1 {
		t.Fatalf("багет outcome = %v", got)
	}

	n, err := testutil.GatherAndCount(m.Registry(), "breadbot_quiz_finished_total", "breadbot_quiz_cancelled_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 2 outcome series and 1 cancel counter, got %d", n)
	}
}

func TestMetricsHandlerExposesGauge(t *testing.T) {
	m := New()
	m.TrackActiveSessions(func() int { return 3 })
	m.UpdateReceived("message")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if !strings.Contains(string(body), "breadbot_quiz_active_sessions 3") {
		t.Fatalf("active sessions gauge missing:\n%s", body)
	}
	if !strings.Contains(string(body), `breadbot_telegram_updates_total{kind="message"} 1`) {
		t.Fatalf("updates counter missing:\n%s", body)
	}
}
