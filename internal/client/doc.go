// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

// Package client implements the headless client application runtime.
//
// It wires the server adapter, the local cache, and the sync services into a
// single process lifecycle driven by command-line flags: one-shot incremental
// or full syncs, a pending probe, and a long-running watch mode that polls
// every tracked group on a timer.
package client
