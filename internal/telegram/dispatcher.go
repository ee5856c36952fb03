package telegram

import (
	"context"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const workerQueueSize = 64

type HandlerFunc func(ctx context.Context, update tgbotapi.Update)

// Dispatcher раздает обновления воркерам. Обновления одного пользователя
// всегда попадают к одному воркеру и обрабатываются в порядке поступления.
type Dispatcher struct {
	handle HandlerFunc
	queues []chan tgbotapi.Update
	wg     sync.WaitGroup
}

func NewDispatcher(workers int, handle HandlerFunc) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	queues := make([]chan tgbotapi.Update, workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, workerQueueSize)
	}
	return &Dispatcher{handle: handle, queues: queues}
}

// Run блокируется, пока канал updates не закроется или ctx не отменят,
// затем дожидается обработки уже принятых обновлений.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	// принятые обновления дорабатываются и после отмены
	handleCtx := context.WithoutCancel(ctx)
	for _, q := range d.queues {
		d.wg.Add(1)
		go d.worker(handleCtx, q)
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			select {
			case d.queues[d.shard(update)] <- update:
			case <-ctx.Done():
				break loop
			}
		}
	}

	for _, q := range d.queues {
		close(q)
	}
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, queue <-chan tgbotapi.Update) {
	defer d.wg.Done()
	for update := range queue {
		d.safeHandle(ctx, update)
	}
}

func (d *Dispatcher) safeHandle(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic while handling update %d: %v", update.UpdateID, r)
		}
	}()
	d.handle(ctx, update)
}

func (d *Dispatcher) shard(update tgbotapi.Update) int {
	var key int64
	if from := update.SentFrom(); from != nil {
		key = from.ID
	} else if chat := update.FromChat(); chat != nil {
		key = chat.ID
	}
	if key < 0 {
		key = -key
	}
	return int(key % int64(len(d.queues)))
}
