// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mangotour/mtour-go/internal/auth"
	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
)

// Users returns the registry without password hashes.
func (s *State) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out
}

// Authenticate verifies a login. Accounts with a password hash require
// the matching password. Sample board accounts carry no hash and log in
// by username alone, mirroring the board's toy identity scheme; that
// shortcut is never extended to admin accounts.
func (s *State) Authenticate(username, password string) (model.User, error) {
	username = strings.TrimSpace(username)

	s.mu.RLock()
	var found *model.User
	for i := range s.users {
		if s.users[i].Username == username {
			found = &s.users[i]
			break
		}
	}
	var user model.User
	if found != nil {
		user = *found
	}
	s.mu.RUnlock()

	if found == nil {
		return model.User{}, fault.New(fault.KindAuthorizationDenied, "사용자 정보가 일치하지 않습니다")
	}

	if user.PasswordHash == "" {
		if user.IsAdmin() {
			return model.User{}, fault.New(fault.KindAuthorizationDenied,
				"admin account has no password set; provision one at startup")
		}
		return user, nil
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return model.User{}, fault.New(fault.KindAuthorizationDenied, "사용자 정보가 일치하지 않습니다")
	}
	user.PasswordHash = ""
	return user, nil
}

// Register creates a regular board account with a hashed password.
func (s *State) Register(ctx context.Context, username, password, nickname string) (model.User, error) {
	username = strings.TrimSpace(username)
	nickname = textSanitizer.Sanitize(strings.TrimSpace(nickname))
	if username == "" || password == "" {
		return model.User{}, fault.New(fault.KindValidationFailure, "아이디와 비밀번호를 입력해주세요")
	}
	if nickname == "" {
		return model.User{}, fault.New(fault.KindValidationFailure, "닉네임을 입력해주세요")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, fault.Wrap(fault.KindUnknown, "hashing password", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Nickname:     nickname,
	}

	s.mu.Lock()
	for _, existing := range s.users {
		if existing.Username == username {
			s.mu.Unlock()
			return model.User{}, fault.New(fault.KindValidationFailure, "이미 사용 중인 아이디입니다")
		}
	}
	s.users = append(s.users, user)
	s.mu.Unlock()

	if err := s.sync.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to persist new user", "user", username, "error", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin provisions the admin account's password hash at startup.
// An empty password leaves the registry untouched.
func (s *State) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fault.Wrap(fault.KindUnknown, "hashing admin password", err)
	}

	s.mu.Lock()
	var admin model.User
	updated := false
	for i := range s.users {
		if s.users[i].Username == username {
			s.users[i].PasswordHash = hash
			s.users[i].Role = model.RoleAdmin
			admin = s.users[i]
			updated = true
			break
		}
	}
	if !updated {
		admin = model.User{
			ID:           uuid.New().String(),
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			Nickname:     "관리자",
		}
		s.users = append(s.users, admin)
	}
	s.mu.Unlock()

	if err := s.sync.SaveUser(ctx, admin); err != nil {
		s.logger.Warn("failed to persist admin account", "error", err)
	}
	return nil
}
