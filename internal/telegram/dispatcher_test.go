package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func messageUpdate(updateID int, userID int64) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID},
		},
	}
}

func TestDispatcherKeepsPerUserOrder(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[int64][]int)
	)
	d := NewDispatcher(4, func(_ context.Context, u tgbotapi.Update) {
		mu.Lock()
		defer mu.Unlock()
		seen[u.Message.From.ID] = append(seen[u.Message.From.ID], u.UpdateID)
	})

	updates := make(chan tgbotapi.Update, 300)
	id := 0
	for i := 0; i < 100; i++ {
		for _, user := range []int64{1, 2, -3} {
			id++
			updates <- messageUpdate(id, user)
		}
	}
	close(updates)

	d.Run(context.Background(), updates)

	for _, user := range []int64{1, 2, -3} {
		ids := seen[user]
		if len(ids) != 100 {
			t.Fatalf("user %d: expected 100 updates, got %d", user, len(ids))
		}
		for i := 1; i < len(ids); i++ {
			if ids[i] <= ids[i-1] {
				t.Fatalf("user %d: updates out of order: %v", user, ids)
			}
		}
	}
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	d := NewDispatcher(2, func(context.Context, tgbotapi.Update) {})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx, make(chan tgbotapi.Update))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}

func TestDispatcherSurvivesPanics(t *testing.T) {
	var (
		mu      sync.Mutex
		handled int
	)
	d := NewDispatcher(1, func(_ context.Context, u tgbotapi.Update) {
		if u.UpdateID == 1 {
			panic("boom")
		}
		mu.Lock()
		handled++
		mu.Unlock()
	})

	updates := make(chan tgbotapi.Update, 2)
	updates <- messageUpdate(1, 1)
	updates <- messageUpdate(2, 1)
	close(updates)
	d.Run(context.Background(), updates)

	if handled != 1 {
		t.Fatalf("expected the update after panic to be handled, got %d", handled)
	}
}
