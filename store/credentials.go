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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const recordExtension = ".owl"

// MemoryCredentials is a CredentialStore held in memory. It is safe for concurrent use.
type MemoryCredentials struct {
	log     *slog.Logger
	records map[string][]byte
	mu      sync.Mutex
}

// NewMemoryCredentials returns an empty MemoryCredentials. A nil logger falls back to slog.Default().
func NewMemoryCredentials(log *slog.Logger) *MemoryCredentials {
	return &MemoryCredentials{
		log:     logger(log),
		records: make(map[string][]byte),
	}
}

// Put implements CredentialStore.
func (m *MemoryCredentials) Put(ctx context.Context, identity, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k, err := key(identity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[k] = clone(record)
	m.log.DebugContext(ctx, "stored credential record", "identity", k, "length", len(record))

	return nil
}

// Get implements CredentialStore.
func (m *MemoryCredentials) Get(ctx context.Context, identity []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k, err := key(identity)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[k]
	if !ok {
		return nil, ErrNotFound
	}

	return clone(record), nil
}

// Delete implements CredentialStore.
func (m *MemoryCredentials) Delete(ctx context.Context, identity []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k, err := key(identity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[k]; !ok {
		return ErrNotFound
	}

	delete(m.records, k)
	m.log.DebugContext(ctx, "deleted credential record", "identity", k)

	return nil
}

// DirectoryCredentials is a CredentialStore keeping one file per identity in a directory. File names are the base58
// encoding of the identity. It is safe for concurrent use within a process.
type DirectoryCredentials struct {
	log *slog.Logger
	dir string
	mu  sync.Mutex
}

// NewDirectoryCredentials returns a DirectoryCredentials over dir, creating it if needed. A nil logger falls back to
// slog.Default().
func NewDirectoryCredentials(dir string, log *slog.Logger) (*DirectoryCredentials, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating credential directory: %w", err)
	}

	return &DirectoryCredentials{log: logger(log), dir: dir}, nil
}

func (d *DirectoryCredentials) path(identity []byte) (string, error) {
	k, err := key(identity)
	if err != nil {
		return "", err
	}

	return filepath.Join(d.dir, k+recordExtension), nil
}

// Put implements CredentialStore. The record is written to a temporary file first and then renamed in place.
func (d *DirectoryCredentials) Put(ctx context.Context, identity, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := d.path(identity)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tmp := p + ".tmp"
	if err = os.WriteFile(tmp, record, 0o600); err != nil {
		return fmt.Errorf("writing credential record: %w", err)
	}

	if err = os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing credential record: %w", err)
	}

	d.log.DebugContext(ctx, "stored credential record", "path", p, "length", len(record))

	return nil
}

// Get implements CredentialStore.
func (d *DirectoryCredentials) Get(ctx context.Context, identity []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := d.path(identity)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	record, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading credential record: %w", err)
	}

	return record, nil
}

// Delete implements CredentialStore.
func (d *DirectoryCredentials) Delete(ctx context.Context, identity []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := d.path(identity)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("deleting credential record: %w", err)
	}

	d.log.DebugContext(ctx, "deleted credential record", "path", p)

	return nil
}

var (
	_ CredentialStore = (*MemoryCredentials)(nil)
	_ CredentialStore = (*DirectoryCredentials)(nil)
)
