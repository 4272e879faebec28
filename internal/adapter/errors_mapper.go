// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/replica-keeper/models"
)

// mapHTTPError converts a non-2xx response into a *SyncError. It returns nil
// for 2xx responses.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(resp.Body()))
	}
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}

	syncErr := &SyncError{
		StatusCode: status,
		Code:       body.Code,
		Message:    body.Message,
	}

	switch {
	case status == http.StatusConflict && body.Code == clientResetCode:
		syncErr.Kind = models.SyncErrorClientReset
		syncErr.Token = body.Token
		syncErr.Err = ErrClientReset
	case status == http.StatusConflict:
		syncErr.Kind = models.SyncErrorUnknown
		syncErr.Err = ErrConflict
	case status == http.StatusBadRequest:
		syncErr.Kind = models.SyncErrorConfiguration
		syncErr.Err = ErrBadRequest
	case status == http.StatusUnauthorized:
		syncErr.Kind = models.SyncErrorConfiguration
		syncErr.Err = ErrUnauthorized
	case status == http.StatusForbidden:
		syncErr.Kind = models.SyncErrorConfiguration
		syncErr.Err = ErrForbidden
	case status == http.StatusNotFound:
		syncErr.Kind = models.SyncErrorConfiguration
		syncErr.Err = ErrNotFound
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		syncErr.Kind = models.SyncErrorTransient
		syncErr.Err = ErrServer
	default:
		syncErr.Kind = models.SyncErrorUnknown
		syncErr.Err = ErrUnexpected
	}

	return syncErr
}

// mapTransportError wraps a failure that produced no response. Context
// cancellation is returned as is so callers can stop quietly.
func mapTransportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	return &SyncError{
		Kind: models.SyncErrorTransient,
		Err:  fmt.Errorf("%w: %s: %w", ErrTransport, op, err),
	}
}
