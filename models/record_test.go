// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressSample_IsComplete(t *testing.T) {
	tests := []struct {
		name   string
		sample ProgressSample
		want   bool
	}{
		{name: "in progress", sample: ProgressSample{Transferred: 10, Total: 100}, want: false},
		{name: "equal", sample: ProgressSample{Transferred: 100, Total: 100}, want: true},
		{name: "explicit flag", sample: ProgressSample{Transferred: 3, Total: 100, Complete: true}, want: true},
		{name: "zero total is not complete", sample: ProgressSample{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sample.IsComplete())
		})
	}
}

func TestChangeSet_Empty(t *testing.T) {
	assert.True(t, ChangeSet{Count: 3}.Empty())
	assert.False(t, ChangeSet{Initial: true}.Empty())
	assert.False(t, ChangeSet{Insertions: []string{"a"}}.Empty())
}

func TestSessionError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := SessionError{Kind: SyncErrorClientReset, Message: "diverged", Err: cause}

	assert.Equal(t, "client_reset: diverged: boom", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "transient: slow", SessionError{Kind: SyncErrorTransient, Message: "slow"}.Error())
}

func TestEnumsString(t *testing.T) {
	assert.Equal(t, "upsert", CreateUpsert.String())
	assert.Equal(t, "errored", SessionErrored.String())
	assert.Equal(t, "api_key", CredentialsAPIKey.String())
	assert.Equal(t, "unknown", SyncErrorKind(42).String())
}

func TestAppBuildInfo_DefaultsToNA(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "version N/A (built 2026-01-01, commit N/A)", info.String())
}

func TestResetMode_Valid(t *testing.T) {
	assert.True(t, ResetModeManual.Valid())
	assert.True(t, ResetModeDiscardLocal.Valid())
	assert.False(t, ResetMode("recover").Valid())
	assert.False(t, ResetMode("").Valid())
}
