// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Trip plan sources. Every quote carries its provenance so the UI can
// tell an AI-generated quote from a locally computed estimate.
const (
	TripPlanSourceAI       = "ai"
	TripPlanSourceEstimate = "estimate"
)

// TripPlanRequest holds the visitor's quote form.
type TripPlanRequest struct {
	Destination   string `json:"destination"`
	Theme         string `json:"theme"`
	Accommodation string `json:"accommodation"`
	Duration      string `json:"duration"`
	Pax           int    `json:"pax"`
	Guide         string `json:"guide"`   // "예" or "아니오"
	Vehicle       string `json:"vehicle"` // "7인승", "16인승", "26인승", "선택안함"
	Remarks       string `json:"remarks,omitempty"`
}

// TripCostItem is one line of the cost breakdown.
type TripCostItem struct {
	Item string `json:"item"`
	Cost string `json:"cost"`
}

// TripPlanOptions echoes the selected options back into the quotation.
type TripPlanOptions struct {
	Guide   string `json:"guide"`
	Vehicle string `json:"vehicle"`
}

// TripPlanResult is a day-by-day itinerary with a cost breakdown. The
// itinerary holds exactly three activities per day: morning, afternoon
// and evening.
type TripPlanResult struct {
	Itinerary     []ItineraryDay   `json:"itinerary"`
	CostBreakdown []TripCostItem   `json:"costBreakdown"`
	TotalCost     string           `json:"totalCost"`
	Summary       string           `json:"summary"`
	Remarks       string           `json:"remarks,omitempty"`
	Options       *TripPlanOptions `json:"options,omitempty"`
	Source        string           `json:"source"`
}
