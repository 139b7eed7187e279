package main

import (
	"os"
	"strings"

	"github.com/0xPolygon/rollupchain/config"
	"github.com/urfave/cli/v2"
)

func configCmd(cliCtx *cli.Context) error {
	if len(cliCtx.StringSlice(config.FlagCfg)) == 0 {
		// String buffer to concatenate all the default config vars
		defaultConfig := strings.Builder{}
		defaultConfig.WriteString(config.DefaultVars)
		defaultConfig.WriteString(config.DefaultValues)
		_, err := os.Stdout.WriteString(defaultConfig.String())
		return err
	}

	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}
	rendered, err := config.SaveConfigToString(*c)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(rendered)
	return err
}
