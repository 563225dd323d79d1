// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Page ids. One PageContent document exists per id under the "pages"
// collection.
const (
	PageBusiness = "business"
	PageGolf     = "golf"
	PageHotel    = "hotel"
	PageFood     = "food"
	PageCulture  = "culture"
	PageMen      = "men"
	PageTour     = "tour"
	PageEvent    = "event"
)

// PageIDs lists every known page id in display order.
var PageIDs = []string{
	PageBusiness,
	PageGolf,
	PageHotel,
	PageFood,
	PageCulture,
	PageMen,
	PageTour,
	PageEvent,
}

// PageSection is an admin-editable titled block rendered as a card that
// expands into a detail modal. DetailContent is markdown.
type PageSection struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	DetailImages  []string `json:"detailImages,omitempty"`
	DetailContent string   `json:"detailContent,omitempty"`
}

// PageSlide is one slide of an optional page gallery.
type PageSlide struct {
	Image       string `json:"image"`
	Description string `json:"description"`
}

// PageContent holds everything the admin can edit on a named page.
type PageContent struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	HeroImage     string        `json:"heroImage"`
	HeroTitle     string        `json:"heroTitle"`
	HeroSubtitle  string        `json:"heroSubtitle"`
	IntroTitle    string        `json:"introTitle"`
	IntroText     string        `json:"introText"`
	IntroImage    string        `json:"introImage"`
	GalleryImages []string      `json:"galleryImages"`
	Sections      []PageSection `json:"sections"`
	Slides        []PageSlide   `json:"slides,omitempty"`
}

// DocID implements the document identity used by the sync service.
func (p PageContent) DocID() string { return p.ID }

// ValidPageID reports whether id names a known page.
func ValidPageID(id string) bool {
	for _, p := range PageIDs {
		if id == p {
			return true
		}
	}
	return false
}
