package bus

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidPattern reports a subscription pattern with a misplaced
	// `#` wildcard.
	ErrInvalidPattern = errors.New("bus: invalid pattern: # must be the last level")

	// ErrClosed reports an operation on a closed bus.
	ErrClosed = errors.New("bus: closed")
)

// Message is one published payload with the concrete topic it was
// published on.
type Message struct {
	Topic   string
	Payload []byte
}

// Subscription is one subscriber's ordered message stream. Messages
// arrive on C in publish order. The message channel is never closed;
// consumers must select on Done to observe cancellation:
//
//	for {
//		select {
//		case msg := <-sub.C():
//			handle(msg)
//		case <-sub.Done():
//			return
//		}
//	}
type Subscription struct {
	ch       chan Message
	done     chan struct{}
	patterns []string
	bus      *Bus

	closeOnce sync.Once
}

// C returns the subscription's receive channel.
func (s *Subscription) C() <-chan Message { return s.ch }

// Done returns a channel closed when the subscription or the bus is
// closed.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Close cancels the subscription. Buffered messages not yet received
// remain readable on C; no new messages arrive afterwards.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.unsubscribe(s)
		close(s.done)
	})
}

// Bus is an in-process topic-based message bus.
type Bus struct {
	mu     sync.RWMutex
	trie   *trie
	subs   map[*Subscription]struct{}
	closed bool
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		trie: newTrie(),
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a subscriber for every given pattern. The buffer
// argument sizes the subscription channel; zero makes delivery fully
// synchronous with Publish.
func (b *Bus) Subscribe(buffer int, patterns ...string) (*Subscription, error) {
	sub := &Subscription{
		ch:       make(chan Message, buffer),
		done:     make(chan struct{}),
		patterns: patterns,
		bus:      b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	for i, pattern := range patterns {
		if err := b.trie.insert(pattern, sub); err != nil {
			for _, p := range patterns[:i] {
				b.trie.remove(p, sub)
			}
			return nil, err
		}
	}
	b.subs[sub] = struct{}{}
	return sub, nil
}

// Publish delivers the payload to every subscription matching topic. A
// subscription matching through several of its patterns still receives
// the message once. Publish blocks while a matching subscriber's buffer
// is full and returns once every subscriber has accepted the message or
// been closed.
func (b *Bus) Publish(topic string, payload []byte) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	matched := b.trie.collect(topic, nil)
	seen := make(map[*Subscription]struct{}, len(matched))
	targets := make([]*Subscription, 0, len(matched))
	for _, sub := range matched {
		if _, dup := seen[sub]; dup {
			continue
		}
		seen[sub] = struct{}{}
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	msg := Message{Topic: topic, Payload: payload}
	for _, sub := range targets {
		select {
		case sub.ch <- msg:
		case <-sub.done:
		}
	}
	return nil
}

// Close shuts the bus down and cancels every open subscription.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.subs = nil
	b.trie = newTrie()
	b.mu.Unlock()

	for _, sub := range subs {
		sub.closeOnce.Do(func() {
			close(sub.done)
		})
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, pattern := range sub.patterns {
		b.trie.remove(pattern, sub)
	}
	delete(b.subs, sub)
}
