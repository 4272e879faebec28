// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"path/filepath"
	"strings"
)

const replicaExt = ".db"

var unsafePathChars = strings.NewReplacer("/", "_", `\`, "_", ":", "_", "?", "_", "#", "_", "*", "_")

// ReplicaPath returns the canonical replica location
// <baseDir>/<appID>/<userID>/<partition>.db. Characters that would change
// the directory layout or break a SQLite URI are replaced with "_".
func ReplicaPath(baseDir, appID, userID, partition string) string {
	return filepath.Join(
		baseDir,
		unsafePathChars.Replace(appID),
		unsafePathChars.Replace(userID),
		unsafePathChars.Replace(partition)+replicaExt,
	)
}
