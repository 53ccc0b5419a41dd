// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the real-estate analysis backend.
//
// The backend exposes three JSON endpoints, all POST:
//
//   - /api/query/        {query}  single-area analysis or free-text answer
//   - /api/compare/      {areas}  metric table across areas
//   - /api/price_growth/ {area}   year to price series
//
// Responses are read defensively. Every field is optional, key order of
// table rows is preserved through Object, and a field of an unexpected type
// is treated as absent instead of failing the whole decode.
//
// # Errors
//
// Failures are returned as *ClientError and can be matched with errors.Is
// against ErrConnection, ErrTimeout, ErrBadStatus and ErrDecode.
package api
