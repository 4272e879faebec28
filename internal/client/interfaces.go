// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until ctx is cancelled
	// or the user quits.
	Run(ctx context.Context) error
}

// Console is the interactive front end started next to the background
// workers. A nil Console means the client runs headless.
type Console interface {
	Run(ctx context.Context) error
}
