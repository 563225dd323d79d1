// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package defaults bundles the initial content shipped with the
// application. It is both the seed source for an empty remote store and
// the full local-fallback snapshot served when the store is unreachable.
package defaults

import "github.com/mangotour/mtour-go/internal/model"

// HeroImages are the default hero slider images.
var HeroImages = []string{
	"https://images.unsplash.com/photo-1535131749006-b7f58c99034b?w=1600",
	"https://images.unsplash.com/photo-1587385789097-0197a7fbd179?w=1600",
	"https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=1600",
}

// MenuItems are the default sub navigation entries.
var MenuItems = []model.MenuItem{
	{Label: "골프", Icon: "golf"},
	{Label: "호텔/빌라", Icon: "hotel"},
	{Label: "먹거리", Icon: "food"},
	{Label: "볼거리", Icon: "culture"},
	{Label: "남성전용", Icon: "men"},
	{Label: "투어", Icon: "tour"},
	{Label: "행사", Icon: "event"},
}

// Settings is the default settings/global document. The AI quote form
// starts closed to visitors; an admin opens it explicitly.
func Settings() model.AppSettings {
	return model.AppSettings{
		HeroImages: append([]string(nil), HeroImages...),
		MenuItems:  append([]model.MenuItem(nil), MenuItems...),
		AIPublic:   false,
	}
}

// Products returns the three default catalog packages.
func Products() []model.Product {
	return []model.Product{
		{
			ID:          "p-danang-golf-3d",
			Title:       "다낭 골프 패키지 3일",
			Description: "다낭 최고의 골프 코스 2회 라운딩과 5성급 호텔 숙박이 포함된 패키지입니다.",
			Image:       "https://images.unsplash.com/photo-1587174486073-ae5e5cff23aa?w=1200",
			Price:       890000,
			Location:    "다낭, 베트남",
			Duration:    "3박 4일",
			Type:        model.ProductTypeGolf,
			Itinerary: []model.ItineraryDay{
				{Day: 1, Activities: []string{"공항 픽업 및 호텔 체크인", "시내 자유 시간", "환영 만찬"}},
				{Day: 2, Activities: []string{"몽고메리 링크스 라운딩", "스파 및 휴식", "해산물 저녁 식사"}},
				{Day: 3, Activities: []string{"바나힐 관광", "한시장 쇼핑", "공항 샌딩"}},
			},
		},
		{
			ID:          "p-hoian-city-tour",
			Title:       "호이안 올드타운 투어",
			Description: "세계문화유산 호이안 구시가지와 바구니배 체험이 포함된 당일 투어입니다.",
			Image:       "https://images.unsplash.com/photo-1559592413-7cec4d0cae2b?w=1200",
			Price:       75000,
			Location:    "호이안, 베트남",
			Duration:    "당일",
			Type:        model.ProductTypeTour,
		},
		{
			ID:          "p-danang-beach-villa",
			Title:       "다낭 프라이빗 풀빌라",
			Description: "미케 비치 인근 프라이빗 풀빌라 숙박 상품입니다. 조식 포함.",
			Image:       "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=1200",
			Price:       320000,
			Location:    "다낭, 베트남",
			Duration:    "1박",
			Type:        model.ProductTypeHotel,
		},
	}
}

// Videos returns the default gallery entries.
func Videos() []model.VideoItem {
	return []model.VideoItem{
		{
			ID:       "v-danang-golf-vlog",
			Title:    "다낭 골프 투어 브이로그",
			URL:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
			Category: model.VideoCategoryGolf,
		},
		{
			ID:       "v-hoian-night",
			Title:    "호이안 야경 산책",
			URL:      "https://www.youtube.com/embed/5qap5aO4i9A",
			Category: model.VideoCategoryTravel,
		},
		{
			ID:       "v-danang-food",
			Title:    "다낭 로컬 맛집 탐방",
			URL:      "https://www.youtube.com/embed/jNQXAC9IVRw",
			Category: model.VideoCategoryFood,
		},
	}
}

// Posts returns the default community board entries.
func Posts() []model.CommunityPost {
	return []model.CommunityPost{
		{
			ID:      "post-welcome",
			Title:   "망고투어 게시판 오픈 안내",
			Content: "망고투어 커뮤니티 게시판이 오픈했습니다. 여행 후기와 질문을 자유롭게 남겨주세요.",
			Author:  "관리자",
			Date:    "2025-01-02",
			Views:   0,
			Comments: []model.Comment{},
		},
		{
			ID:      "post-review-golf",
			Title:   "다낭 골프 패키지 다녀왔습니다",
			Content: "코스 상태도 좋고 일정이 여유로워서 만족스러웠습니다. 추천합니다!",
			Author:  "김골프",
			Date:    "2025-01-15",
			Views:   12,
			Comments: []model.Comment{
				{ID: "c-1", Author: "관리자", Content: "이용해 주셔서 감사합니다.", Date: "2025-01-16", IsAdmin: true},
			},
		},
	}
}

// pageContent builds a default page document with a single intro section.
func pageContent(id, title, heroTitle, heroSubtitle, intro string) model.PageContent {
	return model.PageContent{
		ID:           id,
		Title:        title,
		HeroImage:    "https://images.unsplash.com/photo-1528127269322-539801943592?w=1600",
		HeroTitle:    heroTitle,
		HeroSubtitle: heroSubtitle,
		IntroTitle:   title,
		IntroText:    intro,
		IntroImage:   "https://images.unsplash.com/photo-1504457047772-27faf1c00561?w=1200",
		GalleryImages: []string{
			"https://images.unsplash.com/photo-1535131749006-b7f58c99034b?w=800",
			"https://images.unsplash.com/photo-1559592413-7cec4d0cae2b?w=800",
		},
		Sections: []model.PageSection{
			{Title: title + " 안내", Content: intro},
		},
	}
}

// PageContents returns the default per-page documents keyed by page id.
func PageContents() map[string]model.PageContent {
	pages := []model.PageContent{
		pageContent(model.PageBusiness, "회사소개", "망고투어", "베트남 중부 전문 여행사", "다낭과 호이안을 가장 잘 아는 현지 여행사입니다."),
		pageContent(model.PageGolf, "골프", "다낭 골프", "명문 코스 라운딩", "다낭과 호이안의 명문 골프 코스를 합리적인 가격으로 예약해 드립니다."),
		pageContent(model.PageHotel, "호텔/빌라", "호텔 & 풀빌라", "엄선된 숙소", "5성급 리조트부터 프라이빗 풀빌라까지 직접 검수한 숙소만 안내합니다."),
		pageContent(model.PageFood, "먹거리", "다낭 맛집", "현지인 추천 맛집", "현지 직원이 직접 다녀온 맛집만 소개합니다."),
		pageContent(model.PageCulture, "볼거리", "다낭 볼거리", "관광 명소", "바나힐, 오행산, 호이안 올드타운까지 대표 명소를 안내합니다."),
		pageContent(model.PageMen, "남성전용", "남성전용 투어", "프라이빗 일정", "소규모 남성 전용 프라이빗 일정을 운영합니다."),
		pageContent(model.PageTour, "투어", "데이 투어", "당일 투어 모음", "전용 차량과 한국어 가이드가 포함된 당일 투어입니다."),
		pageContent(model.PageEvent, "행사", "행사/단체", "골프 대회 및 단체 행사", "동호회 골프 대회, 기업 워크숍 등 단체 행사를 대행합니다."),
	}
	m := make(map[string]model.PageContent, len(pages))
	for _, p := range pages {
		m[p.ID] = p
	}
	return m
}

// Popup returns the default popup/main document. Inactive by default.
func Popup() model.PopupNotification {
	return model.PopupNotification{
		ID:       "main",
		Title:    "신규 오픈 이벤트",
		Content:  "홈페이지 오픈 기념, 골프 패키지 예약 시 공항 픽업 무료!",
		IsActive: false,
	}
}

// Users returns the sample user registry seeded into an empty store.
// None of them carries a password hash: the admin account only becomes
// usable once a password is provisioned at startup.
func Users() []model.User {
	return []model.User{
		{ID: "admin", Username: "admin", Role: model.RoleAdmin, Nickname: "관리자"},
		{ID: "u1", Username: "user1", Role: model.RoleUser, Nickname: "골프왕"},
		{ID: "u2", Username: "user2", Role: model.RoleUser, Nickname: "여행좋아"},
	}
}

// GlobalData assembles the complete bundled snapshot.
func GlobalData() *model.GlobalData {
	return &model.GlobalData{
		Settings:     Settings(),
		Products:     Products(),
		Videos:       Videos(),
		Posts:        Posts(),
		PageContents: PageContents(),
		Popup:        Popup(),
	}
}
