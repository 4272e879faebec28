// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the sync
// service.
//
// The primary abstraction is [SyncAdapter], which decouples the session
// provider from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPSyncAdapter]).
//
// Every failed call returns a *[SyncError] whose Kind tells the session how
// to react: a client reset, a transient failure worth retrying, or a
// configuration problem. Sentinel values in errors.go can be matched with
// [errors.Is] for the HTTP status class.
package adapter

import (
	"context"

	"github.com/MKhiriev/replica-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_adapter_mock.go -package=mock

// SyncAdapter defines transport-agnostic communication with the sync
// service.
type SyncAdapter interface {
	// Login authenticates with the given credentials and returns the user
	// with its access token.
	Login(ctx context.Context, appID string, creds models.Credentials) (models.User, error)

	// DownloadPage fetches one page of the partition's records starting at
	// cursor (empty for the first page).
	DownloadPage(ctx context.Context, user models.User, partition, cursor string) (models.RecordsPage, error)

	// Pull fetches the changes after cursor. A diverged replica is reported
	// as a *SyncError of kind [models.SyncErrorClientReset] carrying the
	// reset token.
	Pull(ctx context.Context, user models.User, partition, cursor string) (models.PullResponse, error)

	// AcknowledgeReset tells the service that the client has discarded the
	// diverged replica identified by token.
	AcknowledgeReset(ctx context.Context, user models.User, partition string, ack models.ResetAcknowledgement) error
}
