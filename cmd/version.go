package main

import (
	"os"

	rollupchain "github.com/0xPolygon/rollupchain"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	rollupchain.PrintVersion(os.Stdout)
	return nil
}
