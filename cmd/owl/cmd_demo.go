// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mr-tron/base58"

	"github.com/bytemare/owl/store"
)

type demoCmd struct {
	Identity string `arg:"" optional:"" default:"username" help:"The user identity."`
	Password string `arg:"" optional:"" default:"password" help:"The password used at registration."`
	Attempt  string `help:"The password used at login, defaults to the registered one."`
}

func (cmd *demoCmd) Run(g *globals) error {
	conf, err := g.configuration()
	if err != nil {
		return err
	}

	log := g.logger()

	p, err := newParty(conf, g.ServerID, store.NewMemoryCredentials(log), log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	identity := []byte(cmd.Identity)

	if err = p.register(ctx, identity, []byte(cmd.Password)); err != nil {
		return err
	}

	attempt := cmd.Password
	if cmd.Attempt != "" {
		attempt = cmd.Attempt
	}

	key, err := p.login(ctx, identity, []byte(attempt))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(os.Stdout, "%s: %s\n", conf, base58.Encode(key))

	return err
}
