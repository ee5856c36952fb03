package service

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ParseQuizQuestions парсит вопросы из TXT файла
func ParseQuizQuestions(filename string) ([]QuizQuestion, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var questions []QuizQuestion
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Формат строки: "вопрос" "вариант"=баллы "вариант"=баллы ...
		question, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		question.ID = len(questions)
		questions = append(questions, question)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found in file")
	}

	return questions, nil
}

// parseQuestionLine парсит одну строку с вопросом и вариантами ответа
func parseQuestionLine(line string) (QuizQuestion, error) {
	prompt, rest, err := readQuoted(line)
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("prompt: %w", err)
	}

	q := QuizQuestion{Question: prompt}
	for rest = strings.TrimSpace(rest); rest != ""; rest = strings.TrimSpace(rest) {
		var option string
		option, rest, err = readQuoted(rest)
		if err != nil {
			return QuizQuestion{}, fmt.Errorf("option %d: %w", len(q.Options)+1, err)
		}
		if !strings.HasPrefix(rest, "=") {
			return QuizQuestion{}, fmt.Errorf("option %q: expected =points", option)
		}
		rest = rest[1:]

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		points, err := strconv.Atoi(rest[:end])
		if err != nil {
			return QuizQuestion{}, fmt.Errorf("option %q: invalid points: %w", option, err)
		}
		rest = rest[end:]

		q.Options = append(q.Options, option)
		q.Points = append(q.Points, points)
	}

	if err := q.Validate(); err != nil {
		return QuizQuestion{}, err
	}
	return q, nil
}

// readQuoted вырезает строку в кавычках из начала s
func readQuoted(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected opening quote")
	}
	end := strings.Index(s[1:], `"`)
	if end < 0 {
		return "", "", fmt.Errorf("invalid format: no closing quote")
	}
	value := s[1 : end+1]
	if strings.TrimSpace(value) == "" {
		return "", "", fmt.Errorf("quoted text cannot be empty")
	}
	return value, s[end+2:], nil
}

// LoadQuizQuestions загружает вопросы из файла или возвращает дефолтные при ошибке
func LoadQuizQuestions(filename string) []QuizQuestion {
	questions, err := ParseQuizQuestions(filename)
	if err != nil {
		log.Printf("Warning: failed to load questions from %s: %v", filename, err)
		log.Println("Using built-in bread test questions...")
		return DefaultQuizQuestions()
	}

	log.Printf("Successfully loaded %d questions from %s", len(questions), filename)
	return questions
}
