// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialsKind tells which login method a Credentials value carries.
type CredentialsKind int

const (
	CredentialsAnonymous CredentialsKind = iota
	CredentialsEmailPassword
	CredentialsAPIKey
	CredentialsJWT
)

// String implements fmt.Stringer.
func (k CredentialsKind) String() string {
	switch k {
	case CredentialsEmailPassword:
		return "email_password"
	case CredentialsAPIKey:
		return "api_key"
	case CredentialsJWT:
		return "jwt"
	default:
		return "anonymous"
	}
}

// Credentials is the login material sent to the sync service.
type Credentials struct {
	Kind     CredentialsKind `json:"kind"`
	Email    string          `json:"email,omitempty"`
	Password string          `json:"password,omitempty"`
	APIKey   string          `json:"api_key,omitempty"`
	Token    string          `json:"token,omitempty"`
}

// User is the authenticated account a replica belongs to.
type User struct {
	// ID is the server-assigned user identifier. It is part of the
	// canonical replica path.
	ID string `json:"id"`

	// AccessToken is the bearer token returned by the login call.
	// It is never written to logs.
	AccessToken string `json:"-"`
}
