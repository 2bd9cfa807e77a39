// Package client 提供引用渲染 HTTP 客户端命令。
package client

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/internal/version"
)

// Command 客户端命令
var Command = &cli.Command{
	Name:  "client",
	Usage: "引用渲染服务客户端",
	Flags: slices.Concat([]cli.Flag{
		&cli.StringFlag{
			Name:    "client-url",
			Aliases: []string{"u"},
			Value:   command.Defaults.Client.URL,
			Usage:   "服务器地址",
		},
		&cli.DurationFlag{
			Name:  "client-timeout",
			Value: command.Defaults.Client.Timeout,
			Usage: "请求超时时间",
		},
		&cli.IntFlag{
			Name:  "client-retries",
			Value: command.Defaults.Client.Retries,
			Usage: "重试次数",
		},
	}, command.LogFlags()),
	Action: healthAction,
	Commands: []*cli.Command{
		version.Command,
		{
			Name:   "health",
			Usage:  "检查服务器健康状态",
			Action: healthAction,
		},
		{
			Name:   "render",
			Usage:  "通过服务端渲染引用",
			Flags:  command.CitationFlags(),
			Action: renderAction,
		},
	},
}
