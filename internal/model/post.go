// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// ErrPasswordRequired is returned when a private post carries no password.
var ErrPasswordRequired = errors.New("private post requires a password")

// Comment is a single comment on a community post.
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
}

// CommunityPost is a board entry. Private posts are protected by a
// plaintext password compared on open; this mirrors the deployed scheme
// and is not an authentication mechanism.
type CommunityPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Date       string    `json:"date"`
	Image      string    `json:"image,omitempty"`
	Comments   []Comment `json:"comments"`
	Views      int       `json:"views"`
	IsPrivate  bool      `json:"isPrivate,omitempty"`
	Password   string    `json:"password,omitempty"`
	AdminReply string    `json:"adminReply,omitempty"`
}

// DocID implements the document identity used by the sync service.
func (p CommunityPost) DocID() string { return p.ID }

// Validate checks the invariant that a private post carries a non-empty
// password.
func (p *CommunityPost) Validate() error {
	if p.IsPrivate && p.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Unlock reports whether the given password opens the post. Public posts
// always unlock.
func (p *CommunityPost) Unlock(password string) bool {
	if !p.IsPrivate {
		return true
	}
	return p.Password != "" && p.Password == password
}
