package main

import (
	"os"

	"github.com/misha-mad/vercel-rpc-sub000/cmd/rpcgen/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
