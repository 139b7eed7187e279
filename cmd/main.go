package main

import (
	"os"

	rollupchain "github.com/0xPolygon/rollupchain"
	"github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/config"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/urfave/cli/v2"
)

const appName = "rollupchain"

var (
	configFileFlag = cli.StringSliceFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration file(s)",
		Required: false,
	}
	componentsFlag = cli.StringSliceFlag{
		Name:     config.FlagComponents,
		Aliases:  []string{"co"},
		Usage:    "List of components to run",
		Required: false,
		Value:    cli.NewStringSlice(common.CHAIN, common.ARCHIVE, common.RPC),
	}
	saveConfigFlag = cli.StringFlag{
		Name:     config.FlagSaveConfigPath,
		Aliases:  []string{"s"},
		Usage:    "Save final configuration into to the indicated path (name: " + config.SaveConfigFileName + ")",
		Required: false,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = rollupchain.Version
	flags := []cli.Flag{
		&configFileFlag,
		&componentsFlag,
		&saveConfigFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "config",
			Aliases: []string{},
			Usage:   "Print the default configuration, or the resulting one if config files are given",
			Action:  configCmd,
			Flags:   []cli.Flag{&configFileFlag},
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Run the rollup chain node",
			Action:  start,
			Flags:   flags,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}
