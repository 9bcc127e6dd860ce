// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package owl implements the Owl augmented password-authenticated key exchange.
//
// Owl is an augmented PAKE (aPAKE) over a prime-order group, derived from J-PAKE: the server only stores a verifier
// derived from the password, and a successful login gives both parties mutual implicit authentication and a shared
// key. Every ephemeral value is accompanied by a Schnorr non-interactive zero-knowledge proof bound to the identity of
// its prover. For protocol details, please refer to https://eprint.iacr.org/2023/768.
//
// Registration is a single message from the Client to the Server, over an authenticated and confidential channel:
//
//	registration, _ := client.Register(identity, password)
//	record, _ := server.Register(registration)
//
// Login takes three messages:
//
//	session, request, _ := client.InitialLogin(identity, password)
//	response, state, _ := server.InitialLogin(identity, request, record)
//	clientKey, finalize, _ := client.FinalizeLogin(session, response)
//	serverKey, _ := server.FinalizeLogin(identity, finalize, state)
//
// The Server is stateless: the credential record and the carry state of an ongoing login are returned to the
// application, which must store them and hand them back. A carry state is consumed by FinalizeLogin, and must not be
// kept once that call returns. The Client holds the secrets of a login in a ClientSession, which is also single use.
//
// The client's key must only be used once the server has accepted the finalization request, since only the server
// authenticates the client explicitly.
package owl
