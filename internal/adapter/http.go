// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/utils"
	"github.com/MKhiriev/replica-keeper/models"
)

const requestIDHeader = "X-Request-ID"

type httpSyncAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs an HTTP/REST implementation of [SyncAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
func NewHTTPSyncAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (SyncAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: http address: %w", ErrInvalidConfig, err)
	}

	a := &httpSyncAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
	a.client.OnBeforeRequest(a.setRequestID)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Login implements [SyncAdapter]. It POSTs the credentials to
// POST /api/auth/login. The bearer token is taken from the Authorization
// response header and the user id from its sub claim.
func (h *httpSyncAdapter) Login(ctx context.Context, appID string, creds models.Credentials) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{AppID: appID, Credentials: creds}).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, mapTransportError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: login parse bearer token: %w", ErrUnexpected, err)
	}

	userID, err := utils.ParseSubjectFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: login parse user id: %w", ErrUnexpected, err)
	}

	h.logger.Debug().
		Str("func", "httpSyncAdapter.Login").
		Str("credentials", creds.Kind.String()).
		Str("user_id", userID).
		Msg("logged in")

	return models.User{ID: userID, AccessToken: token}, nil
}

// DownloadPage implements [SyncAdapter] via
// GET /api/partitions/{partition}/records?cursor=.
func (h *httpSyncAdapter) DownloadPage(ctx context.Context, user models.User, partition, cursor string) (models.RecordsPage, error) {
	var page models.RecordsPage

	req, err := h.authedRequest(ctx, user)
	if err != nil {
		return page, err
	}

	resp, err := req.
		SetPathParam("partition", partition).
		SetQueryParam("cursor", cursor).
		SetResult(&page).
		Get("/api/partitions/{partition}/records")
	if err != nil {
		return models.RecordsPage{}, mapTransportError("download request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordsPage{}, err
	}

	return page, nil
}

// Pull implements [SyncAdapter] via
// GET /api/partitions/{partition}/changes?cursor=.
func (h *httpSyncAdapter) Pull(ctx context.Context, user models.User, partition, cursor string) (models.PullResponse, error) {
	var changes models.PullResponse

	req, err := h.authedRequest(ctx, user)
	if err != nil {
		return changes, err
	}

	resp, err := req.
		SetPathParam("partition", partition).
		SetQueryParam("cursor", cursor).
		SetResult(&changes).
		Get("/api/partitions/{partition}/changes")
	if err != nil {
		return models.PullResponse{}, mapTransportError("pull request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	return changes, nil
}

// AcknowledgeReset implements [SyncAdapter] via
// POST /api/partitions/{partition}/client-reset.
func (h *httpSyncAdapter) AcknowledgeReset(ctx context.Context, user models.User, partition string, ack models.ResetAcknowledgement) error {
	req, err := h.authedRequest(ctx, user)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("partition", partition).
		SetBody(ack).
		Post("/api/partitions/{partition}/client-reset")
	if err != nil {
		return mapTransportError("acknowledge reset request", err)
	}

	return mapHTTPError(resp)
}

func (h *httpSyncAdapter) authedRequest(ctx context.Context, user models.User) (*resty.Request, error) {
	if user.AccessToken == "" {
		return nil, &SyncError{Kind: models.SyncErrorConfiguration, Err: ErrMissingToken}
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(user.AccessToken), nil
}

// setRequestID stamps every request with the id carried by its context, or a
// fresh one.
func (h *httpSyncAdapter) setRequestID(_ *resty.Client, req *resty.Request) error {
	id, ok := utils.GetRequestIDFromContext(req.Context())
	if !ok {
		id = h.ids.Generate()
	}
	req.SetHeader(requestIDHeader, id)
	return nil
}
