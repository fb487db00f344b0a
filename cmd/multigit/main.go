// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Command multigit keeps one local Git repository synchronized across
// multiple hosted remotes.
package main

import (
	"os"

	"github.com/multigit-io/multigit/cmd/multigit/cmd"
)

var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
