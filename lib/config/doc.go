// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the flip clock.
//
// Configuration is loaded from a single file specified by either the
// FLIPCLOCK_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search. A run
// without a file uses [Default] and takes its target from the command
// line.
//
// Files ending in .json or .jsonc are parsed as JSON after stripping
// comments and trailing commas; every other file is parsed as YAML.
// Both forms use the same snake_case keys.
//
// Variable expansion is performed on log_output after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Durations are stored as Go duration strings and parsed by [Config.Timing]
// and [Config.ChimeDuration]. [Config.Validate] reports every problem
// at once.
package config
