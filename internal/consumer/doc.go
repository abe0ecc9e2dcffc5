// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package consumer accepts inbound HTTP calls for an endpoint and dispatches
// them to a user handler.
//
// Each inbound request becomes an Exchange: URL path placeholders and query
// parameters land in the In message headers, the request body in the In
// body. The handler's Out message is written back as the response. Handler
// failures turn into a 500-class response and a fault report; they never
// propagate to the transport layer. When continuations are enabled, a
// request that outlives the configured timeout gets a 503 and its late
// result is dropped.
package consumer
