// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Shipboard
// binaries.
//
// Configuration is loaded from a single YAML file specified by:
//   - SHIPBOARD_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery, and environment
// variables do not override file values. This ensures deterministic,
// auditable configuration with no hidden overrides. The only
// expansion performed is ${HOME} in paths for portability.
package config
