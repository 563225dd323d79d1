// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared by the sync service, the
// application state and the HTTP handlers: products, videos, community
// posts, page contents, popup notification, settings and users.
package model

// Product types
const (
	ProductTypeGolf  = "golf"
	ProductTypeTour  = "tour"
	ProductTypeHotel = "hotel"
)

// ItineraryDay is one day of a product itinerary. Day numbers are
// contiguous starting at 1 and are renumbered when a day is removed.
type ItineraryDay struct {
	Day        int      `json:"day"`
	Activities []string `json:"activities"`
}

// Product is a golf/tour/hotel package in the catalog.
type Product struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Image         string         `json:"image"`
	Price         int64          `json:"price"`
	Location      string         `json:"location"`
	Duration      string         `json:"duration"`
	Type          string         `json:"type"`
	Itinerary     []ItineraryDay `json:"itinerary,omitempty"`
	DetailImages  []string       `json:"detailImages,omitempty"`
	DetailContent string         `json:"detailContent,omitempty"`
}

// DocID implements the document identity used by the sync service.
func (p Product) DocID() string { return p.ID }

// ValidType reports whether the product type is one of the closed set.
// Category filtering on the public pages depends on it.
func (p *Product) ValidType() bool {
	switch p.Type {
	case ProductTypeGolf, ProductTypeTour, ProductTypeHotel:
		return true
	}
	return false
}

// RemoveItineraryDay removes the itinerary entry with the given day number
// and renumbers the remaining days contiguously from 1, preserving their
// activity lists and order. It returns false if no such day exists.
func (p *Product) RemoveItineraryDay(day int) bool {
	idx := -1
	for i, d := range p.Itinerary {
		if d.Day == day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	p.Itinerary = append(p.Itinerary[:idx], p.Itinerary[idx+1:]...)
	for i := range p.Itinerary {
		p.Itinerary[i].Day = i + 1
	}
	return true
}

// AddItineraryDay appends an empty day at the end of the itinerary and
// returns its day number.
func (p *Product) AddItineraryDay() int {
	day := len(p.Itinerary) + 1
	p.Itinerary = append(p.Itinerary, ItineraryDay{Day: day, Activities: []string{}})
	return day
}
