package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeQuestions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	return path
}

func TestParseQuizQuestions(t *testing.T) {
	path := writeQuestions(t, `
# хлебный тест
"Твоё любимое время года?" "зима"=4 "лето"=2 "осень"=1 "весна"=3

"Кофе или чай?"   "кофе"=1  "чай"=2
`)

	questions, err := ParseQuizQuestions(path)
	if err != nil {
		t.Fatalf("ParseQuizQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.ID != 0 || first.Question != "Твоё любимое время года?" {
		t.Fatalf("unexpected first question: %+v", first)
	}
	if strings.Join(first.Options, ",") != "зима,лето,осень,весна" {
		t.Fatalf("unexpected options: %v", first.Options)
	}
	if first.Points[0] != 4 || first.Points[3] != 3 {
		t.Fatalf("unexpected points: %v", first.Points)
	}
	if questions[1].ID != 1 || questions[1].Points[1] != 2 {
		t.Fatalf("unexpected second question: %+v", questions[1])
	}
}

func TestParseQuizQuestionsErrors(t *testing.T) {
	cases := map[string]string{
		"no quotes":      `вопрос "a"=1 "b"=2`,
		"unclosed":       `"вопрос "a"=1`,
		"missing points": `"вопрос" "a" "b"=2`,
		"bad points":     `"вопрос" "a"=x "b"=2`,
		"one option":     `"вопрос" "a"=1`,
		"duplicate":      `"вопрос" "a"=1 "a"=2`,
		"empty file":     "\n\n# только комментарий\n",
	}
	for name, content := range cases {
		if _, err := ParseQuizQuestions(writeQuestions(t, content)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestLoadQuizQuestionsFallsBackToDefaults(t *testing.T) {
	questions := LoadQuizQuestions(filepath.Join(t.TempDir(), "missing.txt"))
	if len(questions) != len(DefaultQuizQuestions()) {
		t.Fatalf("expected default questions, got %d", len(questions))
	}

	path := writeQuestions(t, `"q" "a"=1 "b"=2`)
	if got := LoadQuizQuestions(path); len(got) != 1 {
		t.Fatalf("expected 1 question from file, got %d", len(got))
	}
}
