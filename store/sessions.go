// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionKey struct {
	identity string
	id       uuid.UUID
}

type session struct {
	expires time.Time
	state   []byte
}

// Sessions holds the server carry states of ongoing logins, between the initial login and its finalization. Each
// state is bound to the user identity and a random session identifier, and can be taken only once. It is safe for
// concurrent use.
type Sessions struct {
	log      *slog.Logger
	now      func() time.Time
	sessions map[sessionKey]session
	ttl      time.Duration
	mu       sync.Mutex
}

// NewSessions returns an empty session store. States older than ttl are discarded, and a zero ttl keeps them until
// taken. A nil logger falls back to slog.Default().
func NewSessions(ttl time.Duration, log *slog.Logger) *Sessions {
	return &Sessions{
		log:      logger(log),
		now:      time.Now,
		sessions: make(map[sessionKey]session),
		ttl:      ttl,
	}
}

func (s *Sessions) expired(e session) bool {
	return s.ttl > 0 && s.now().After(e.expires)
}

// Put stores the encoded carry state for identity, and returns the identifier of the new session.
func (s *Sessions) Put(ctx context.Context, identity, state []byte) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	k, err := key(identity)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionKey{identity: k, id: id}] = session{
		expires: s.now().Add(s.ttl),
		state:   clone(state),
	}
	s.log.DebugContext(ctx, "opened login session", "identity", k, "session", id)

	return id, nil
}

// Take returns the carry state of the session and removes it from the store, so that a state is never handed out
// twice. A missing, already taken or expired session returns ErrNotFound.
func (s *Sessions) Take(ctx context.Context, identity []byte, id uuid.UUID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k, err := key(identity)
	if err != nil {
		return nil, err
	}

	sk := sessionKey{identity: k, id: id}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sk]
	if !ok {
		return nil, ErrNotFound
	}

	delete(s.sessions, sk)

	if s.expired(e) {
		clear(e.state)
		s.log.DebugContext(ctx, "discarded expired login session", "identity", k, "session", id)

		return nil, ErrNotFound
	}

	s.log.DebugContext(ctx, "closed login session", "identity", k, "session", id)

	return e.state, nil
}

// Purge removes all expired sessions and returns how many were removed.
func (s *Sessions) Purge(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for k, e := range s.sessions {
		if s.expired(e) {
			clear(e.state)
			delete(s.sessions, k)
			n++
		}
	}

	if n != 0 {
		s.log.DebugContext(ctx, "purged expired login sessions", "count", n)
	}

	return n
}

// Len returns the number of pending sessions, including expired ones not yet purged.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
