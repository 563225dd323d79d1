// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/mangotour/mtour-go/internal/model"
)

func quoteRequest() model.TripPlanRequest {
	return model.TripPlanRequest{
		Destination:   "다낭",
		Theme:         "골프",
		Accommodation: "4성급",
		Duration:      "3박4일",
		Pax:           4,
		Guide:         "예",
		Vehicle:       "7인승",
	}
}

func TestGenerateTripPlanWithoutKeyServesEstimate(t *testing.T) {
	p := NewPlanner("", nil)
	if p.Configured() {
		t.Fatal("planner without key reports configured")
	}

	result := p.GenerateTripPlan(context.Background(), quoteRequest())
	if result.Source != model.TripPlanSourceEstimate {
		t.Errorf("Source = %q, want %q", result.Source, model.TripPlanSourceEstimate)
	}
	if len(result.Itinerary) != 3 {
		t.Fatalf("itinerary days = %d, want 3", len(result.Itinerary))
	}
	for i, day := range result.Itinerary {
		if day.Day != i+1 {
			t.Errorf("day %d numbered %d", i, day.Day)
		}
		if len(day.Activities) != 3 {
			t.Errorf("day %d has %d activities, want 3", day.Day, len(day.Activities))
		}
	}
	if result.TotalCost == "" || !strings.Contains(result.TotalCost, "VND") {
		t.Errorf("TotalCost = %q, want VND amount", result.TotalCost)
	}
	if !strings.Contains(result.Summary, "항공권 제외") {
		t.Errorf("summary %q does not mention airfare exclusion", result.Summary)
	}
	if !strings.Contains(result.Summary, "다낭") || !strings.Contains(result.Summary, "4인") {
		t.Errorf("summary %q does not echo the request", result.Summary)
	}
	if result.Options == nil || result.Options.Vehicle != "7인승" || result.Options.Guide != "예" {
		t.Errorf("Options = %+v, want echoed guide/vehicle selection", result.Options)
	}
}

func TestGenerateTripPlanNormalizesPax(t *testing.T) {
	p := NewPlanner("", nil)

	req := quoteRequest()
	req.Pax = 0
	result := p.GenerateTripPlan(context.Background(), req)
	if !strings.Contains(result.Summary, "1인") {
		t.Errorf("summary %q, want pax normalized to 1", result.Summary)
	}
}

func TestGenerateTripPlanCarriesRemarks(t *testing.T) {
	p := NewPlanner("", nil)

	req := quoteRequest()
	req.Remarks = "조용한 호텔 선호"
	result := p.GenerateTripPlan(context.Background(), req)
	if result.Remarks != req.Remarks {
		t.Errorf("Remarks = %q, want %q", result.Remarks, req.Remarks)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"골프", "골프"},
		{" 여행 ", "여행"},
		{"골프입니다", "골프"},
		{"카테고리: 먹거리", "먹거리"},
		{"something else", "기타"},
		{"", "기타"},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.answer); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestClassifyVideoCategoryOfflineHeuristic(t *testing.T) {
	p := NewPlanner("", nil)
	ctx := context.Background()

	tests := []struct {
		title string
		want  string
	}{
		{"다낭 골프 투어 브이로그", "골프"},
		{"호이안 올드타운 투어", "여행"},
		{"베트남 쌀국수 맛집 탐방", "먹거리"},
		{"신규 오픈 안내", "기타"},
	}
	for _, tt := range tests {
		if got := p.ClassifyVideoCategory(ctx, tt.title, ""); got != tt.want {
			t.Errorf("ClassifyVideoCategory(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	fenced := "```json\n{\"totalCost\":\"1 VND\"}\n```"
	if got := string(stripCodeFences(fenced)); got != `{"totalCost":"1 VND"}` {
		t.Errorf("stripCodeFences = %q", got)
	}
	plain := `{"a":1}`
	if got := string(stripCodeFences(plain)); got != plain {
		t.Errorf("stripCodeFences(plain) = %q", got)
	}
}
