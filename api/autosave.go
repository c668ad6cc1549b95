/*
autosave.go - Periodic background persistence

PURPOSE:
  Mirrors the current state into the stores on a fixed interval even when
  no mutation triggered a write. Every mutation already persists
  synchronously; this loop re-flushes anything a failed write left behind.

USAGE:
  saver := NewAutoSaver(book, 30*time.Second)
  saver.Start()
  // ... later
  saver.Stop()
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// AutoSaver periodically flushes the Book through its Persister.
type AutoSaver struct {
	Book     *ledger.Book
	Interval time.Duration

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewAutoSaver creates an AutoSaver with the given flush interval.
func NewAutoSaver(book *ledger.Book, interval time.Duration) *AutoSaver {
	return &AutoSaver{
		Book:     book,
		Interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the background flush loop.
func (a *AutoSaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ticker = time.NewTicker(a.Interval)
	a.wg.Add(1)
	go a.run()

	log.Printf("[AutoSave] Started with interval: %v", a.Interval)
}

// Stop halts the loop and waits for an in-flight flush to finish.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker != nil {
		a.ticker.Stop()
		close(a.stop)
		a.wg.Wait()
		log.Println("[AutoSave] Stopped")
	}
}

func (a *AutoSaver) run() {
	defer a.wg.Done()

	for {
		select {
		case <-a.ticker.C:
			if err := a.Book.Save(context.Background()); err != nil {
				log.Printf("[AutoSave] flush failed: %v", err)
			}
		case <-a.stop:
			return
		}
	}
}
