package client

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/internal/command/server"
)

func healthAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	if err := New(cfg.Client).Health(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.Root().Writer, "ok")

	return nil
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}

	tpl, err := command.Template(cfg.Citation)
	if err != nil {
		return err
	}

	records, err := command.Records(cfg.Citation, cmd.StringSlice("set"))
	if err != nil {
		return err
	}

	c := New(cfg.Client)
	for i, record := range records {
		text, err := c.Render(ctx, server.RenderRequest{
			Template: tpl,
			Data:     record,
			Debug:    cfg.Citation.Debug,
			Strict:   cfg.Citation.Strict,
		})
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		_, _ = fmt.Fprintln(cmd.Root().Writer, text)
	}

	return nil
}
