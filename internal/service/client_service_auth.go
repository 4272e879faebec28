// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/replica-keeper/internal/adapter"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

type clientAuthService struct {
	adapter     adapter.SyncAdapter
	appID       string
	credentials models.Credentials

	logger *logger.Logger
}

func NewClientAuthService(syncAdapter adapter.SyncAdapter, appID string, credentials models.Credentials, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:     syncAdapter,
		appID:       appID,
		credentials: credentials,
		logger:      logger,
	}
}

func (a *clientAuthService) Login(ctx context.Context) (models.User, error) {
	user, err := a.adapter.Login(ctx, a.appID, a.credentials)
	if err != nil {
		a.logger.Err(err).
			Str("func", "clientAuthService.Login").
			Str("app_id", a.appID).
			Str("credentials", a.credentials.Kind.String()).
			Msg("login failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	a.logger.Info().
		Str("func", "clientAuthService.Login").
		Str("user_id", user.ID).
		Str("credentials", a.credentials.Kind.String()).
		Msg("logged in")

	return user, nil
}
