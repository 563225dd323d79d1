// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Identifiable is implemented by every entity that lives in a remote
// collection keyed by its own document id.
type Identifiable interface {
	DocID() string
}

// GlobalData is the full application snapshot assembled on startup: the
// settings document, the three list collections, the per-page contents
// and the popup. UsingLocalFallback is true when the snapshot came from
// the bundled defaults because the remote store was unreachable or not
// configured.
type GlobalData struct {
	Settings           AppSettings            `json:"settings"`
	Products           []Product              `json:"products"`
	Videos             []VideoItem            `json:"videos"`
	Posts              []CommunityPost        `json:"posts"`
	PageContents       map[string]PageContent `json:"pageContents"`
	Popup              PopupNotification      `json:"popup"`
	UsingLocalFallback bool                   `json:"isUsingLocalFallback"`
}

// Clone returns a copy that shares no backing arrays or maps with the
// receiver. Inner slices that are edited in place (itineraries,
// comments) are copied too, so the result stays stable while the
// original keeps changing.
func (g GlobalData) Clone() GlobalData {
	out := g
	out.Products = make([]Product, len(g.Products))
	copy(out.Products, g.Products)
	for i := range out.Products {
		if it := out.Products[i].Itinerary; it != nil {
			out.Products[i].Itinerary = make([]ItineraryDay, len(it))
			copy(out.Products[i].Itinerary, it)
		}
	}
	out.Videos = make([]VideoItem, len(g.Videos))
	copy(out.Videos, g.Videos)
	out.Posts = make([]CommunityPost, len(g.Posts))
	copy(out.Posts, g.Posts)
	for i := range out.Posts {
		if c := out.Posts[i].Comments; c != nil {
			out.Posts[i].Comments = make([]Comment, len(c))
			copy(out.Posts[i].Comments, c)
		}
	}
	if g.PageContents != nil {
		out.PageContents = make(map[string]PageContent, len(g.PageContents))
		for id, page := range g.PageContents {
			out.PageContents[id] = page
		}
	}
	return out
}
