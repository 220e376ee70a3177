// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logman implements the leveled log manager. Every call renders the
// record on the console and, depending on the persistence policy and the
// per-call options, appends it to a per-severity JSON-Lines or CSV file.
// Each severity is exposed in a blocking and an asynchronous convention that
// produce identical records.
package logman
