package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PoluyanbIch/BreadBot/internal/config"
	"github.com/PoluyanbIch/BreadBot/internal/httpapi"
	"github.com/PoluyanbIch/BreadBot/internal/logging"
	"github.com/PoluyanbIch/BreadBot/internal/metrics"
	"github.com/PoluyanbIch/BreadBot/internal/service"
	"github.com/PoluyanbIch/BreadBot/internal/storage"
	"github.com/PoluyanbIch/BreadBot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logCloser := logging.Setup(cfg.Debug, cfg.LogFile)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, storage.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	// Redis, если задан адрес, иначе результаты в памяти
	resultService := service.NewResultService(connectRedis(ctx, cfg))

	m := metrics.New()
	engine, err := buildEngine(cfg, m)
	if err != nil {
		log.Fatal(err)
	}
	m.TrackActiveSessions(engine.ActiveSessions)

	bot, err := telegram.NewBot(cfg.TelegramToken, telegram.Deps{
		Engine:         engine,
		Results:        resultService,
		Users:          storage.NewUserStore(db),
		Counter:        m,
		AudioDir:       cfg.AudioDir,
		ShuffleOptions: cfg.ShuffleOptions,
		Workers:        cfg.Workers,
		Debug:          cfg.Debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	go runJanitor(ctx, engine, cfg.IdleTimeout, cfg.JanitorInterval)

	if cfg.HTTPAddr != "" {
		go func() {
			err := httpapi.Serve(ctx, cfg.HTTPAddr, httpapi.NewRouter(resultService, m.Handler()))
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Error serving HTTP: %v", err)
			}
		}()
	}

	log.Println("🤖 Bot is starting...")
	if err := bot.Start(ctx); err != nil {
		log.Fatal(err)
	}
}

func buildEngine(cfg config.Config, observer service.QuizObserver) (*service.QuizEngine, error) {
	bank, err := service.NewQuestionBank(service.LoadQuizQuestions(cfg.QuestionsFile))
	if err != nil {
		return nil, err
	}
	classifier, err := service.NewOutcomeClassifier(service.DefaultOutcomeBands(), service.DefaultOutcome())
	if err != nil {
		return nil, err
	}
	return service.NewQuizEngine(bank, classifier, service.WithObserver(observer))
}

func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, keeping results in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis %s unavailable, keeping results in memory: %v", cfg.RedisAddr, err)
		client.Close()
		return nil
	}
	log.Printf("Using Redis at %s for quiz results", cfg.RedisAddr)
	return client
}

// runJanitor удаляет брошенные тесты
func runJanitor(ctx context.Context, engine *service.QuizEngine, maxIdle, every time.Duration) {
	if maxIdle <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := engine.ExpireIdle(maxIdle); n > 0 {
				log.Printf("Expired %d idle quiz sessions", n)
			}
		}
	}
}
