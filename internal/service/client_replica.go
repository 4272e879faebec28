// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

// Replica is the context object every reset and lifecycle operation works
// on: who owns the replica, where it lives and which session serves it.
type Replica struct {
	User       models.User
	Partition  string
	Path       string
	Generation int

	session Session

	mu  sync.Mutex
	sub *store.Subscription
}

func newReplica(session Session) *Replica {
	cfg := session.Config()
	return &Replica{
		User:       cfg.User,
		Partition:  cfg.Partition,
		Path:       cfg.Path,
		Generation: cfg.Generation,
		session:    session,
	}
}

// Session returns the session attached to the replica.
func (r *Replica) Session() Session {
	return r.session
}

// Store returns the object store of the attached session.
func (r *Replica) Store() store.ReplicaStore {
	return r.session.Store()
}

// Config returns the replica configuration.
func (r *Replica) Config() models.ReplicaConfig {
	return models.ReplicaConfig{
		User:       r.User,
		Partition:  r.Partition,
		Path:       r.Path,
		Generation: r.Generation,
	}
}

func (r *Replica) setSubscription(sub *store.Subscription) {
	r.mu.Lock()
	old := r.sub
	r.sub = sub
	r.mu.Unlock()

	if old != nil {
		old.Invalidate()
	}
}

func (r *Replica) invalidateSubscription() {
	r.setSubscription(nil)
}
