// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/replica-keeper/models"

type logUpdatedMsg struct{}

type progressMsg struct {
	event models.ProgressEvent
}

type seedDoneMsg struct {
	changes models.ChangeSet
	err     error
}

type copiedMsg struct {
	lines int
	err   error
}

type clearStatusMsg struct{}
