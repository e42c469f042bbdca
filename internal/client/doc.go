// SPDX-License-Identifier: Apache-2.0

// Package client implements the headless sync agent runtime.
//
// It wires the client services and background synchronization workers into a
// single process lifecycle and exposes a small facade for embedding UIs.
package client
