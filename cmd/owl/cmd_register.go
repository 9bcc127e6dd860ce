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

	"github.com/bytemare/owl/store"
)

type registerCmd struct {
	Identity string `arg:"" help:"The user identity."`
	Store    string `type:"path" default:"owl-records" help:"The credential directory."`
}

func (cmd *registerCmd) Run(g *globals) error {
	conf, err := g.configuration()
	if err != nil {
		return err
	}

	log := g.logger()

	records, err := store.NewDirectoryCredentials(cmd.Store, log)
	if err != nil {
		return err
	}

	p, err := newParty(conf, g.ServerID, records, log)
	if err != nil {
		return err
	}

	password, err := askPassword("Enter password: ")
	if err != nil {
		return err
	}

	if err = p.register(context.Background(), []byte(cmd.Identity), password); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stderr, "Registered %s\n", cmd.Identity)

	return nil
}
