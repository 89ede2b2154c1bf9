// This program provides a command line client for a powchain node.
package main

import "github.com/ardanlabs/powchain/app/tooling/chaincli/cmd"

func main() {
	cmd.Execute()
}
