// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package sink defines the primitives used to implement logman record sinks.
// It standardizes the record model and the writer contract so console and
// file sinks can share the same dispatch path.
package sink
