// Package inspect 提供模板校验命令。
package inspect

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

// Command 校验模板并列出其中的 token
var Command = &cli.Command{
	Name:      "inspect",
	Usage:     "校验模板并列出 token",
	ArgsUsage: "[template]",
	Flags:     slices.Concat(command.CitationFlags(), command.LogFlags()),
	Action:    action,
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Load(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Present() {
		cfg.Citation.Template = cmd.Args().First()
	}

	tpl, err := command.Template(cfg.Citation)
	if err != nil {
		return err
	}

	var opts []citation.Option
	if cfg.Citation.Strict {
		opts = append(opts, citation.WithStrictValidation())
	}
	if err := citation.Validate(tpl, opts...); err != nil {
		return err
	}

	w := cmd.Root().Writer
	tokens := citation.Tokens(tpl)
	_, _ = fmt.Fprintf(w, "template is valid, %d distinct keys\n", len(tokens))
	for _, key := range tokens {
		_, _ = fmt.Fprintf(w, "  @%s\n", key)
	}

	return nil
}
