// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	AppID       string      `json:"app_id"`
	Credentials Credentials `json:"credentials"`
}

// RecordsPage is the response of the paged partition download.
type RecordsPage struct {
	Records []Record `json:"records"`

	// Total is the number of records in the partition at the time the
	// download started.
	Total uint64 `json:"total"`

	// Cursor is the opaque server position of the next page, or of the
	// first incremental pull once HasMore is false.
	Cursor string `json:"cursor"`

	// HasMore tells whether another page has to be fetched.
	HasMore bool `json:"has_more"`
}

// PullResponse is the response of an incremental pull.
type PullResponse struct {
	Upserts   []Record `json:"upserts"`
	Deletions []string `json:"deletions"`
	Cursor    string   `json:"cursor"`
}

// ResetAcknowledgement is the body of POST .../client-reset.
type ResetAcknowledgement struct {
	Token      string `json:"token"`
	Generation int    `json:"generation"`
}

// ErrorResponse is the JSON error body returned by the sync service.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
