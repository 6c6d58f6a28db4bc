// SPDX-License-Identifier: MPL-2.0

// Command uribo runs per-directory command aliases defined in .uribo files.
package main

import "github.com/uribo/uribo/cmd/uribo"

func main() {
	cmd.Execute()
}
