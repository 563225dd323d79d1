// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registry entry. The JSON form is the persisted document;
// handlers expose users through response structs that omit the hash.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         string `json:"role"`
	Nickname     string `json:"nickname,omitempty"`
}

// DocID implements the document identity used by the sync service.
func (u User) DocID() string { return u.ID }

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
