// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"

	"github.com/MKhiriev/replica-keeper/models"
)

const subscriptionBuffer = 64

// Subscription delivers change sets of one replica until it is invalidated.
// C is closed on Invalidate or when the replica is closed.
type Subscription struct {
	C <-chan models.ChangeSet

	ch       chan models.ChangeSet
	once     sync.Once
	observer *observer
}

// Invalidate stops delivery and closes C. It is safe to call more than once.
func (s *Subscription) Invalidate() {
	s.observer.remove(s)
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// observer fans committed change sets out to subscriptions. A subscription
// whose buffer is full misses the change set; the next one still carries
// the current count.
type observer struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newObserver() *observer {
	return &observer{subs: make(map[*Subscription]struct{})}
}

func (o *observer) subscribe(initial models.ChangeSet) *Subscription {
	ch := make(chan models.ChangeSet, subscriptionBuffer)
	sub := &Subscription{C: ch, ch: ch, observer: o}

	initial.Initial = true
	ch <- initial

	o.mu.Lock()
	o.subs[sub] = struct{}{}
	o.mu.Unlock()

	return sub
}

// publish returns how many subscriptions dropped the change set.
func (o *observer) publish(cs models.ChangeSet) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	dropped := 0
	for sub := range o.subs {
		select {
		case sub.ch <- cs:
		default:
			dropped++
		}
	}
	return dropped
}

func (o *observer) remove(sub *Subscription) {
	o.mu.Lock()
	delete(o.subs, sub)
	o.mu.Unlock()

	sub.close()
}

func (o *observer) closeAll() {
	o.mu.Lock()
	subs := o.subs
	o.subs = make(map[*Subscription]struct{})
	o.mu.Unlock()

	for sub := range subs {
		sub.close()
	}
}
