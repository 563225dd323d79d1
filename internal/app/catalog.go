// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mangotour/mtour-go/internal/ai"
	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/service"
	"github.com/mangotour/mtour-go/internal/util"
)

// Products returns a copy of the catalog.
func (s *State) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.data.Products))
	copy(out, s.data.Products)
	return out
}

// Product looks a catalog entry up by id.
func (s *State) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// ProductsByType filters the catalog by product type.
func (s *State) ProductsByType(productType string) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Product
	for _, p := range s.data.Products {
		if p.Type == productType {
			out = append(out, p)
		}
	}
	return out
}

// SaveProduct inserts or updates a catalog entry and arms the products
// sync. A missing id means insert.
func (s *State) SaveProduct(p model.Product) (model.Product, error) {
	if p.Title == "" {
		return model.Product{}, fault.New(fault.KindValidationFailure, "product title is required")
	}
	if !p.ValidType() {
		return model.Product{}, fault.New(fault.KindValidationFailure,
			fmt.Sprintf("unknown product type %q", p.Type))
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, existing := range s.data.Products {
		if existing.ID == p.ID {
			s.data.Products[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Products = append(s.data.Products, p)
	}

	s.queueProductsLocked()
	return p, nil
}

// DeleteProduct removes a catalog entry and arms the products sync.
func (s *State) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.data.Products {
		if p.ID == id {
			s.data.Products = append(s.data.Products[:i], s.data.Products[i+1:]...)
			s.queueProductsLocked()
			return true
		}
	}
	return false
}

// RemoveProductItineraryDay drops one day from a product's itinerary,
// renumbering the remaining days contiguously.
func (s *State) RemoveProductItineraryDay(productID string, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Products {
		if s.data.Products[i].ID != productID {
			continue
		}
		if !s.data.Products[i].RemoveItineraryDay(day) {
			return fault.New(fault.KindValidationFailure,
				fmt.Sprintf("itinerary has no day %d", day))
		}
		s.queueProductsLocked()
		return nil
	}
	return fault.New(fault.KindValidationFailure, "unknown product")
}

func (s *State) queueProductsLocked() {
	docs, err := service.Documents(s.data.Products)
	s.queueCollection(service.CollectionProducts, docs, err)
}

// Videos returns a copy of the gallery.
func (s *State) Videos() []model.VideoItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.VideoItem, len(s.data.Videos))
	copy(out, s.data.Videos)
	return out
}

// SaveVideo inserts or updates a gallery entry and arms the videos
// sync. An empty category is filled in by the AI classifier (which
// degrades to a keyword heuristic); an invalid category is normalized
// onto the closed set.
func (s *State) SaveVideo(ctx context.Context, v model.VideoItem) (model.VideoItem, error) {
	if v.Title == "" || v.URL == "" {
		return model.VideoItem{}, fault.New(fault.KindValidationFailure, "video title and URL are required")
	}
	if err := util.ValidateExternalURL(v.URL); err != nil {
		return model.VideoItem{}, fault.Wrap(fault.KindValidationFailure, "invalid video URL", err)
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Category == "" {
		v.Category = s.planner.ClassifyVideoCategory(ctx, v.Title, "")
	} else if !model.ValidVideoCategory(v.Category) {
		v.Category = ai.NormalizeCategory(v.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, existing := range s.data.Videos {
		if existing.ID == v.ID {
			s.data.Videos[i] = v
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Videos = append(s.data.Videos, v)
	}

	s.queueVideosLocked()
	return v, nil
}

// DeleteVideo removes a gallery entry and arms the videos sync.
func (s *State) DeleteVideo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.data.Videos {
		if v.ID == id {
			s.data.Videos = append(s.data.Videos[:i], s.data.Videos[i+1:]...)
			s.queueVideosLocked()
			return true
		}
	}
	return false
}

func (s *State) queueVideosLocked() {
	docs, err := service.Documents(s.data.Videos)
	s.queueCollection(service.CollectionVideos, docs, err)
}
