// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/rumbo/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
