// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// PopupNotification is the singleton promotional popup, stored as the
// "popup/main" document.
type PopupNotification struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	IsActive bool   `json:"isActive"`
	Link     string `json:"link,omitempty"`
}
