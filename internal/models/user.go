package models

import "time"

// Credential is the stored account record. Username is the key of the
// credential store and is never serialized inside the record itself.
type Credential struct {
	Username     string    `json:"-"`
	PasswordHash string    `json:"password_hash"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is who a session is authenticated as.
type Identity struct {
	Username    string
	DisplayName string
}

// Identity returns the public part of the credential.
func (c Credential) Identity() Identity {
	return Identity{Username: c.Username, DisplayName: c.DisplayName}
}
