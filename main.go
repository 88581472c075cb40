// SPDX-License-Identifier: MPL-2.0

package main

import cmd "tidyhook/cmd/tidyhook"

func main() {
	cmd.Execute()
}
