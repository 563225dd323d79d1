// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// MenuItem is one entry of the sub navigation menu.
type MenuItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// AppSettings is the singleton "settings/global" document: the hero
// slider images, the sub menu and whether the AI quote feature is open
// to visitors.
type AppSettings struct {
	HeroImages []string   `json:"heroImages"`
	MenuItems  []MenuItem `json:"menuItems"`
	AIPublic   bool       `json:"isAIPublic"`
}

// Settings keys accepted by SaveSettings. Each maps to a top-level field
// of the settings document and is merge-written independently.
const (
	SettingsKeyHeroImages = "heroImages"
	SettingsKeyMenuItems  = "menuItems"
	SettingsKeyAIPublic   = "isAIPublic"
)
