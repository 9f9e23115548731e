package realtime

import (
	"context"
	"sync"

	"storefront/internal/domain/repository"
)

// subscription is the snapshot feed shared by the store implementations.
// Snapshots are full-collection replacements, so a slow reader only ever needs the most
// recent one: offer keeps a single pending snapshot and the pump delivers it in order.
type subscription struct {
	path   string
	out    chan repository.Snapshot
	notify chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending *repository.Snapshot
	err     error

	once    sync.Once
	onClose func()
}

func newSubscription(parent context.Context, path string, onClose func()) *subscription {
	ctx, cancel := context.WithCancel(parent)
	sub := &subscription{
		path:    path,
		out:     make(chan repository.Snapshot),
		notify:  make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		onClose: onClose,
	}

	go sub.pump()

	return sub
}

// Snapshots implements repository.Subscription.
func (s *subscription) Snapshots() <-chan repository.Snapshot {
	return s.out
}

// Err implements repository.Subscription.
func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close implements repository.Subscription.
func (s *subscription) Close() {
	s.finish(repository.ErrSubscriptionClosed)
}

// offer replaces the pending snapshot and wakes the pump.
func (s *subscription) offer(snapshot repository.Snapshot) {
	s.mu.Lock()
	s.pending = &snapshot
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// fail terminates the subscription with a store error.
func (s *subscription) fail(err error) {
	s.finish(err)
}

func (s *subscription) finish(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()

		s.cancel()
		if s.onClose != nil {
			s.onClose()
		}
	})
}

func (s *subscription) pump() {
	defer close(s.out)

	for {
		select {
		case <-s.ctx.Done():
			s.finish(repository.ErrSubscriptionClosed)

			return
		case <-s.notify:
			s.mu.Lock()
			snapshot := s.pending
			s.pending = nil
			s.mu.Unlock()

			if snapshot == nil {
				continue
			}

			select {
			case s.out <- *snapshot:
			case <-s.ctx.Done():
				s.finish(repository.ErrSubscriptionClosed)

				return
			}
		}
	}
}
