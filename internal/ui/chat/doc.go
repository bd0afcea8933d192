// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea chat widget.
//
// The widget owns a request coordinator and renders its transcript in a
// scrollable viewport above a single-line input. While a request is in
// flight the input stays visible but submissions are ignored, matching the
// coordinator's at-most-one-outstanding rule. Failure notices surface as
// auto-dismissing toasts rather than modal errors.
package chat
