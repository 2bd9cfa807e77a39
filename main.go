package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-citation/internal/command/configcmd"
	"github.com/lwmacct/251207-go-pkg-citation/internal/command/inspect"
	"github.com/lwmacct/251207-go-pkg-citation/internal/command/render"
	"github.com/lwmacct/251207-go-pkg-citation/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-citation/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "根据模板与数据生成引用文本",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			render.Command,
			inspect.Command,
			configcmd.Command,
			server.Command,
			client.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
