package main

import (
	"github/chapool/wallet-core/cmd"
)

func main() {
	cmd.Execute()
}
