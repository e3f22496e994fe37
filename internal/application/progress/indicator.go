package progress

import (
	"fmt"
	"sync"
	"time"
)

const DefaultInterval = 3 * time.Second

// Indicator rotates through a fixed list of status messages while active.
// It is cosmetic: nothing about the rotation reflects real request progress.
type Indicator struct {
	messages []string
	interval time.Duration

	mu     sync.Mutex
	index  int
	active bool
	stop   chan struct{}
	done   chan struct{}
}

func NewIndicator(messages []string, interval time.Duration) (*Indicator, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("indicator needs at least one message")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	own := make([]string, len(messages))
	copy(own, messages)
	return &Indicator{
		messages: own,
		interval: interval,
	}, nil
}

// Start rewinds to the first message and begins rotating. Starting an active
// indicator is a no-op.
func (i *Indicator) Start() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active {
		return
	}
	i.active = true
	i.index = 0
	i.stop = make(chan struct{})
	i.done = make(chan struct{})
	go i.run(i.stop, i.done)
}

// Stop halts the rotation and waits for the ticker goroutine to exit.
func (i *Indicator) Stop() {
	i.mu.Lock()
	if !i.active {
		i.mu.Unlock()
		return
	}
	i.active = false
	stop, done := i.stop, i.done
	i.stop, i.done = nil, nil
	i.mu.Unlock()

	close(stop)
	<-done
}

func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

func (i *Indicator) Current() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.messages[i.index]
}

func (i *Indicator) Messages() []string {
	out := make([]string, len(i.messages))
	copy(out, i.messages)
	return out
}

func (i *Indicator) Interval() time.Duration {
	return i.interval
}

// Advance moves to the next message, wrapping from the last to the first.
func (i *Indicator) Advance() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.index = (i.index + 1) % len(i.messages)
	return i.messages[i.index]
}

func (i *Indicator) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			i.Advance()
		}
	}
}
