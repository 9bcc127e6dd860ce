// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Command owl registers users and runs Owl logins against a directory of credential records.
package main

import (
	"bufio"
	"crypto"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/bytemare/owl"
)

type globals struct {
	Group    string `help:"The group to run the protocol in (ristretto255, p256, p384, p521, edwards25519, secp256k1)." default:"p256"`
	Hash     string `help:"The hash function (sha256, sha384, sha512, sha3-256, sha3-384, sha3-512)." default:"sha256"`
	ServerID string `help:"The server identity." default:"localhost"`
	Verbose  bool   `help:"Log debug output to stderr." short:"v"`
}

type cli struct {
	globals

	Register registerCmd `cmd:"" help:"Register a user in a credential directory."`
	Login    loginCmd    `cmd:"" help:"Run a login for a registered user."`
	Demo     demoCmd     `cmd:"" help:"Run a registration and a login in memory."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run(&cli.globals)
	ctx.FatalIfErrorf(err)
}

var (
	errUnknownGroup = errors.New("unknown group")
	errUnknownHash  = errors.New("unknown hash function")
)

var groups = map[string]owl.Group{
	"ristretto255": owl.Ristretto255Sha512,
	"p256":         owl.P256Sha256,
	"p384":         owl.P384Sha384,
	"p521":         owl.P521Sha512,
	"edwards25519": owl.Edwards25519Sha512,
	"secp256k1":    owl.Secp256k1,
}

var hashes = map[string]crypto.Hash{
	"sha256":   crypto.SHA256,
	"sha384":   crypto.SHA384,
	"sha512":   crypto.SHA512,
	"sha3-256": crypto.SHA3_256,
	"sha3-384": crypto.SHA3_384,
	"sha3-512": crypto.SHA3_512,
}

func (g *globals) configuration() (*owl.Configuration, error) {
	grp, ok := groups[strings.ToLower(g.Group)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownGroup, g.Group)
	}

	h, ok := hashes[strings.ToLower(g.Hash)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownHash, g.Hash)
	}

	conf := &owl.Configuration{Group: grp, Hash: h}
	if _, err := conf.Deserializer(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (g *globals) logger() *slog.Logger {
	level := slog.LevelInfo
	if g.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// askPassword prompts for a password on a terminal, or reads a single line from a non-interactive stdin.
func askPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}

	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(fd)
}

func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return []byte(strings.TrimRight(string(line), "\r\n")), nil
}
