// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/service"
)

// postDate is the board's display date format.
const postDate = "2006-01-02"

// Posts returns the board entries with private bodies redacted. Titles
// stay visible in the list; content and comments require Unlock.
func (s *State) Posts() []model.CommunityPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CommunityPost, len(s.data.Posts))
	copy(out, s.data.Posts)
	for i := range out {
		out[i].Password = ""
		if out[i].IsPrivate {
			out[i].Content = ""
			out[i].Comments = nil
			out[i].AdminReply = ""
		}
	}
	return out
}

// AddPost validates and stores a new board entry. Private posts must
// carry a password; user markup is sanitized before it is stored.
func (s *State) AddPost(p model.CommunityPost) (model.CommunityPost, error) {
	p.Title = textSanitizer.Sanitize(p.Title)
	p.Author = textSanitizer.Sanitize(p.Author)
	p.Content = htmlSanitizer.Sanitize(p.Content)
	if p.Title == "" || p.Content == "" {
		return model.CommunityPost{}, fault.New(fault.KindValidationFailure, "post title and content are required")
	}
	if err := p.Validate(); err != nil {
		return model.CommunityPost{}, fault.Wrap(fault.KindValidationFailure, "invalid post", err)
	}

	p.ID = uuid.New().String()
	p.Date = time.Now().Format(postDate)
	p.Views = 0
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the board's display order.
	s.data.Posts = append([]model.CommunityPost{p}, s.data.Posts...)
	s.queuePostsLocked()
	return p, nil
}

// DeletePost removes a board entry and arms the posts sync.
func (s *State) DeletePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.data.Posts {
		if p.ID == id {
			s.data.Posts = append(s.data.Posts[:i], s.data.Posts[i+1:]...)
			s.queuePostsLocked()
			return true
		}
	}
	return false
}

// OpenPost unlocks a post, increments its view counter and returns the
// full entry. Public posts open with any password; private posts
// require the exact one.
func (s *State) OpenPost(id, password string) (model.CommunityPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Posts {
		if s.data.Posts[i].ID != id {
			continue
		}
		if !s.data.Posts[i].Unlock(password) {
			return model.CommunityPost{}, fault.New(fault.KindAuthorizationDenied, "비밀번호가 일치하지 않습니다")
		}
		s.data.Posts[i].Views++
		s.queuePostsLocked()

		post := s.data.Posts[i]
		post.Password = ""
		return post, nil
	}
	return model.CommunityPost{}, fault.New(fault.KindValidationFailure, "unknown post")
}

// AddComment appends a sanitized comment to a post.
func (s *State) AddComment(postID string, c model.Comment) (model.Comment, error) {
	c.Author = textSanitizer.Sanitize(c.Author)
	c.Content = htmlSanitizer.Sanitize(c.Content)
	if c.Content == "" {
		return model.Comment{}, fault.New(fault.KindValidationFailure, "comment content is required")
	}
	c.ID = uuid.New().String()
	c.Date = time.Now().Format(postDate)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Posts {
		if s.data.Posts[i].ID != postID {
			continue
		}
		s.data.Posts[i].Comments = append(s.data.Posts[i].Comments, c)
		s.queuePostsLocked()
		return c, nil
	}
	return model.Comment{}, fault.New(fault.KindValidationFailure, "unknown post")
}

// SetAdminReply sets or clears the admin reply on a post.
func (s *State) SetAdminReply(postID, reply string) error {
	reply = htmlSanitizer.Sanitize(reply)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Posts {
		if s.data.Posts[i].ID != postID {
			continue
		}
		s.data.Posts[i].AdminReply = reply
		s.queuePostsLocked()
		return nil
	}
	return fault.New(fault.KindValidationFailure, "unknown post")
}

func (s *State) queuePostsLocked() {
	docs, err := service.Documents(s.data.Posts)
	s.queueCollection(service.CollectionPosts, docs, err)
}
