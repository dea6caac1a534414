// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package main provides the entry point for the SnowFlake application.
// It initializes the main application logic from the internal app package,
// embeds version information, and starts the application run loop.
package main

import (
	_ "embed"

	"github.com/kamaranl/snowflake/internal/app"
)

const (
	// Name defines the application name used for display and logging purposes.
	Name = "SnowFlake"

	// License holds the license identifier and copyright notice for the application.
	License = `

Copyright © 2025, Kamaran Layne
BSD 3-Clause License

This software is distributed "as-is" with NO WARRANTY.
`
)

// Version holds the application version, embedded at build time from the VERSION file.
//
//go:embed VERSION
var Version string

func main() {
	a := app.New(Name)
	a.Meta.Version = Version
	a.Meta.License = License
	a.Run()
}
