// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/mangotour/mtour-go/internal/model"
)

// ClassifyVideoCategory picks the best gallery category for a video
// title. It never fails: any API trouble or unusable answer falls back
// to a keyword heuristic, and ultimately to the catch-all category.
func (p *Planner) ClassifyVideoCategory(ctx context.Context, title, description string) string {
	if !p.configured {
		return keywordCategory(title + " " + description)
	}

	if description == "" {
		description = "설명 없음"
	}
	prompt := fmt.Sprintf(`다음 동영상의 제목과 설명을 분석하여 가장 적합한 카테고리 하나를 선택하세요.
카테고리 옵션: ['골프', '여행', '먹거리', '기타']

동영상 제목: %s
동영상 설명: %s

반드시 위 4가지 옵션 중 하나만 정확하게 텍스트로 반환하세요. 다른 설명은 생략하세요.`, title, description)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(20),
		Temperature:         openai.Float(0.1),
	})
	if err != nil || len(resp.Choices) == 0 {
		p.logger.Warn("video classification failed, using keyword heuristic", "title", title, "error", err)
		return keywordCategory(title + " " + description)
	}

	return NormalizeCategory(resp.Choices[0].Message.Content)
}

// NormalizeCategory maps a model answer onto a valid category: exact
// match first, then substring containment, then the catch-all.
func NormalizeCategory(answer string) string {
	answer = strings.TrimSpace(answer)
	if model.ValidVideoCategory(answer) {
		return answer
	}
	for _, cat := range model.VideoCategories {
		if strings.Contains(answer, cat) {
			return cat
		}
	}
	return model.VideoCategoryOther
}

// categoryKeywords back the offline heuristic.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{model.VideoCategoryGolf, []string{"골프", "라운딩", "필드", "cc", "golf"}},
	{model.VideoCategoryFood, []string{"먹거리", "맛집", "음식", "쌀국수", "먹방", "카페", "food"}},
	{model.VideoCategoryTravel, []string{"여행", "투어", "관광", "호텔", "리조트", "바나힐", "tour"}},
}

func keywordCategory(text string) string {
	text = strings.ToLower(text)
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(text, w) {
				return kw.category
			}
		}
	}
	return model.VideoCategoryOther
}
