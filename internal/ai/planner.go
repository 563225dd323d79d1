// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai generates trip quotations and classifies video titles
// through the OpenAI API. Every operation degrades gracefully: without
// an API key, or when the API fails, callers get a deterministic local
// estimate instead of an error, marked with its provenance.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/mangotour/mtour-go/internal/model"
)

// DefaultModel is the chat model used for quotations and classification.
const DefaultModel = shared.ChatModelGPT4oMini

// Planner talks to the OpenAI API on behalf of the quote form and the
// video manager.
type Planner struct {
	client     openai.Client
	model      shared.ChatModel
	configured bool
	logger     *slog.Logger
}

// NewPlanner builds a planner. An empty API key yields a planner that
// serves local estimates only.
func NewPlanner(apiKey string, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Planner{model: DefaultModel, logger: logger}
	if apiKey != "" {
		p.client = openai.NewClient(option.WithAPIKey(apiKey))
		p.configured = true
	}
	return p
}

// Configured reports whether an API key is present.
func (p *Planner) Configured() bool { return p.configured }

// GenerateTripPlan produces a day-by-day Vietnam itinerary with a VND
// cost breakdown for the quote form. It never returns an error for API
// trouble: a failed or unconfigured call falls back to a fixed sample
// quotation marked Source "estimate".
func (p *Planner) GenerateTripPlan(ctx context.Context, req model.TripPlanRequest) *model.TripPlanResult {
	if req.Pax < 1 {
		req.Pax = 1
	}
	if !p.configured {
		return p.estimate(req)
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a Vietnam travel agency quoting assistant. Respond in Korean (Hangul) with JSON only."),
			openai.UserMessage(tripPrompt(req)),
		},
		MaxCompletionTokens: openai.Int(20000),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		p.logger.Warn("trip plan generation failed, serving local estimate", "error", err)
		return p.estimate(req)
	}
	if len(resp.Choices) == 0 {
		p.logger.Warn("trip plan response has no choices, serving local estimate")
		return p.estimate(req)
	}

	var result model.TripPlanResult
	if err := json.Unmarshal(stripCodeFences(resp.Choices[0].Message.Content), &result); err != nil {
		p.logger.Warn("trip plan response is not valid JSON, serving local estimate", "error", err)
		return p.estimate(req)
	}
	if len(result.Itinerary) == 0 || result.TotalCost == "" {
		p.logger.Warn("trip plan response is incomplete, serving local estimate")
		return p.estimate(req)
	}

	result.Source = model.TripPlanSourceAI
	result.Remarks = req.Remarks
	result.Options = &model.TripPlanOptions{Guide: req.Guide, Vehicle: req.Vehicle}
	return &result
}

// tripPrompt mirrors the agency's quoting rules: per-day vehicle and
// guide surcharges, breakfast and golf-course lunch included, dinner
// and airfare excluded, all amounts in comma-formatted VND.
func tripPrompt(req model.TripPlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Create a detailed travel itinerary and cost breakdown for a trip to Vietnam.

Destination: %s
Theme: %s
Accommodation Level: %s
Duration: %s
Number of People: %d
Guide Included: %s
Vehicle: %s
`, req.Destination, req.Theme, req.Accommodation, req.Duration, req.Pax, req.Guide, req.Vehicle)
	if req.Remarks != "" {
		fmt.Fprintf(&b, "Special Requests: %s\n", req.Remarks)
	}
	b.WriteString(`
Please provide:
1. A daily itinerary with exactly 3 activities per day:
   - 1st activity: Morning (오전)
   - 2nd activity: Afternoon (오후)
   - 3rd activity: Evening (저녁)
2. A cost breakdown table (estimated) for accommodation, golf/activities, food, and transport in VND.
3. A total estimated cost in VND.
4. A brief summary of the trip concept.

IMPORTANT PRICING RULES (CALCULATE STRICTLY in VND):
1. Vehicle Cost (Calculate based on itinerary days):
   - If Vehicle is '7인승': Add 2,500,000 VND per day.
   - If Vehicle is '16인승': Add 3,000,000 VND per day.
   - If Vehicle is '26인승': Add 4,500,000 VND per day (Estimate).
   - If '선택안함': 0 VND.
2. Guide Cost:
   - If Guide Included is '예': Add 2,000,000 VND per day.
   - If Guide Included is '아니오': 0 VND.
3. Meal Policy: Include Hotel Breakfast & Golf Course Lunch costs. EXCLUDE Dinner cost.
4. Airfare: EXCLUDE completely.
5. Output:
   - Explicitly mention in the summary or cost breakdown that "항공권 제외" (Airfare Excluded).
   - In 'costBreakdown', list the vehicle and guide costs separately if applicable.
   - Format numbers with commas (e.g. 10,000,000 VND).

Respond in KOREAN (Hangul). Keep the itinerary descriptions concise.
Return a JSON object with keys: itinerary (array of {day, activities}),
costBreakdown (array of {item, cost}), totalCost (string), summary (string).`)
	return b.String()
}

// estimate is the offline sample quotation served when the API is not
// available. The content matches the agency's standard 3-day Da Nang
// package.
func (p *Planner) estimate(req model.TripPlanRequest) *model.TripPlanResult {
	return &model.TripPlanResult{
		Itinerary: []model.ItineraryDay{
			{Day: 1, Activities: []string{
				"공항 픽업 및 호텔 체크인",
				"시내 중심가 산책 및 환전",
				"현지 맛집에서 쌀국수 저녁 식사",
			}},
			{Day: 2, Activities: []string{
				"오전 골프 라운딩 (또는 시티 투어)",
				"유명 카페 방문 및 휴식",
				"야시장 투어 및 길거리 음식 체험",
			}},
			{Day: 3, Activities: []string{
				"근교 명소 (바나힐 등) 관광",
				"전통 마사지 체험",
				"해산물 레스토랑 만찬",
			}},
		},
		CostBreakdown: []model.TripCostItem{
			{Item: "숙박비 (3박, 4성급 기준)", Cost: "4,500,000 VND"},
			{Item: "차량 지원 (기사 포함)", Cost: "3,000,000 VND"},
			{Item: "식비 (조식 포함, 중/석식)", Cost: "2,500,000 VND"},
			{Item: "입장료 및 체험비", Cost: "1,500,000 VND"},
			{Item: "가이드 비용", Cost: "2,000,000 VND"},
		},
		TotalCost: "13,500,000 VND",
		Summary: fmt.Sprintf("[예시 견적] %s %s 여행입니다. %s 테마에 맞춰 구성되었으며, %d인 기준 견적입니다. (항공권 제외)",
			req.Destination, req.Duration, req.Theme, req.Pax),
		Remarks: req.Remarks,
		Options: &model.TripPlanOptions{Guide: req.Guide, Vehicle: req.Vehicle},
		Source:  model.TripPlanSourceEstimate,
	}
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models emit even in JSON mode.
func stripCodeFences(s string) []byte {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return []byte(s)
}
