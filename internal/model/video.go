// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Video categories. The labels are the Korean strings shown in the UI and
// returned by the AI classifier.
const (
	VideoCategoryGolf   = "골프"
	VideoCategoryTravel = "여행"
	VideoCategoryFood   = "먹거리"
	VideoCategoryOther  = "기타"
)

// VideoCategories lists every valid category in display order.
var VideoCategories = []string{
	VideoCategoryGolf,
	VideoCategoryTravel,
	VideoCategoryFood,
	VideoCategoryOther,
}

// VideoItem is a gallery entry. URL is either a direct file URL or an
// embed source.
type VideoItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

// DocID implements the document identity used by the sync service.
func (v VideoItem) DocID() string { return v.ID }

// ValidVideoCategory reports whether c is one of the closed category set.
func ValidVideoCategory(c string) bool {
	for _, cat := range VideoCategories {
		if c == cat {
			return true
		}
	}
	return false
}
