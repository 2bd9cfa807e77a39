package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

func action(_ context.Context, cmd *cli.Command) error {
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

	opts := command.CitationOptions(cfg.Citation, slog.Default())
	for i, record := range records {
		text, err := citation.Render(tpl, record, opts...)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		slog.Debug("Rendered citation", "record", i)
		_, _ = fmt.Fprintln(cmd.Root().Writer, text)
	}

	return nil
}
