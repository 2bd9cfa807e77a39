// Package configcmd 提供输出当前生效配置的命令。
package configcmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/cfgm"
)

// Command 输出合并默认值、配置文件、环境变量与 flags 之后的配置
var Command = &cli.Command{
	Name:  "config",
	Usage: "输出当前生效的配置",
	Flags: slices.Concat([]cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "yaml",
			Usage: "输出格式 yaml|json",
		},
	}, command.LogFlags()),
	Action: action,
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	var out []byte
	switch cmd.String("format") {
	case "yaml":
		out, err = cfgm.MarshalYAML(*cfg)
	case "json":
		out, err = cfgm.MarshalJSON(*cfg)
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format %q", cmd.String("format"))
	}
	if err != nil {
		return err
	}

	_, err = cmd.Root().Writer.Write(out)

	return err
}
