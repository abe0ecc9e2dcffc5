// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport owns the outbound HTTP clients used by producers.
//
// A [Client] couples a resty HTTP client with a bounded worker pool.
// Starting the client spawns the pool's minimum worker set; this is the only
// blocking setup step and completes before the client is handed out. Start is
// idempotent and safe for concurrent use, so a single shared Client may back
// many producers. Stop ownership follows the creator: a producer never stops
// a client that was supplied to it from outside.
package transport
