// Package command 提供各子命令共享的配置加载与 flag 定义。
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/config"
	"github.com/lwmacct/251207-go-pkg-citation/internal/datafile"
	"github.com/lwmacct/251207-go-pkg-citation/internal/logging"
	"github.com/lwmacct/251207-go-pkg-citation/internal/version"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ErrNoTemplate 既没有 template 也没有 template-file。
var ErrNoTemplate = errors.New("no citation template given (use --citation-template or --citation-template-file)")

// LogFlags 返回日志相关 flags。
func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 debug|info|warn|error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式 text|json",
		},
	}
}

// CitationFlags 返回引用渲染相关 flags。
func CitationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "citation-template",
			Aliases: []string{"t"},
			Usage:   "引用模板，例如 {@title}{, by @author}",
		},
		&cli.StringFlag{
			Name:    "citation-template-file",
			Aliases: []string{"f"},
			Usage:   "模板文件路径",
		},
		&cli.StringFlag{
			Name:    "citation-data-file",
			Aliases: []string{"d"},
			Usage:   "数据文件路径 (.json/.yaml/.toml)",
		},
		&cli.BoolFlag{
			Name:  "citation-expand-env",
			Value: Defaults.Citation.ExpandEnv,
			Usage: "对数据文件执行 ${VAR} 展开",
		},
		&cli.BoolFlag{
			Name:  "citation-debug",
			Usage: "无值 token 渲染为 [key] 并输出解析轨迹",
		},
		&cli.BoolFlag{
			Name:  "citation-strict",
			Usage: "严格校验括号嵌套",
		},
		&cli.IntFlag{
			Name:  "citation-max-passes",
			Usage: "解析轮数上限，0 表示不限制",
		},
		&cli.StringSliceFlag{
			Name:    "set",
			Aliases: []string{"s"},
			Usage:   "覆盖数据字段 key=value，可重复；value 中的 ${key} 引用同一记录的字段",
		},
	}
}

// Load 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags，并初始化日志。
func Load(cmd *cli.Command) (*config.Config, error) {
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName,
		cfgm.WithEnvPrefix(config.EnvPrefix),
	)
	if err != nil {
		return nil, err
	}

	// 调试模式的解析轨迹以 Debug 级别输出
	if cfg.Citation.Debug {
		cfg.Log.Level = "debug"
	}
	if _, err := logging.Setup(os.Stderr, cfg.Log); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Template 返回配置中的模板，template 为空时读取 template-file。
func Template(cfg config.CitationConfig) (string, error) {
	if cfg.Template != "" {
		return cfg.Template, nil
	}
	if cfg.TemplateFile == "" {
		return "", ErrNoTemplate
	}

	content, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		return "", fmt.Errorf("read template file: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

// Records 加载数据文件并应用 --set 覆盖，没有数据文件时返回仅含覆盖字段的一条记录。
func Records(cfg config.CitationConfig, sets []string) ([]datafile.Record, error) {
	var records []datafile.Record
	if cfg.DataFile != "" {
		loaded, err := datafile.Load(cfg.DataFile, cfg.ExpandEnv)
		if err != nil {
			return nil, err
		}
		records = loaded
	}

	overrides, err := datafile.ParseAssignments(sets)
	if err != nil {
		return nil, err
	}

	return datafile.Apply(records, overrides)
}

// CitationOptions 将配置转换为 citation 构建选项。
func CitationOptions(cfg config.CitationConfig, logger *slog.Logger) []citation.Option {
	opts := []citation.Option{
		citation.WithDebug(cfg.Debug),
		citation.WithMaxPasses(cfg.MaxPasses),
	}
	if logger != nil {
		opts = append(opts, citation.WithLogger(logger))
	}
	if cfg.Strict {
		opts = append(opts, citation.WithStrictValidation())
	}

	return opts
}
