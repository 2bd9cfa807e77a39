package cfgm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-citation/pkg/templexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径，先命中的文件生效：
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//  4. config.yaml
//  5. config/config.yaml
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	fields := leaves(reflect.TypeOf(defaultConfig))
	tree := toTree(defaultConfig, false)

	fileTree, err := loadFirstFile(o)
	if err != nil {
		return nil, err
	}
	merge(tree, fileTree)

	if o.envPrefix != "" {
		applyEnv(tree, o.envPrefix, fields)
	}
	if o.cmd != nil {
		applyCLIFlags(o.cmd, tree, fields)
	}

	var cfg T
	if err := decode(tree, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// loadFirstFile 按顺序读取第一个存在的配置文件；都不存在时返回空 map。
func loadFirstFile(o *options) (map[string]any, error) {
	for _, path := range o.configPaths {
		if !filepath.IsAbs(path) && o.baseDir != "" {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !o.noTemplateExpansion {
			expanded, expandErr := templexp.ExpandTemplate(string(content))
			if expandErr != nil {
				return nil, fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileTree, err := parseFile(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)

		return fileTree, nil
	}

	slog.Debug("No config file found, using defaults")

	return map[string]any{}, nil
}

func applyEnv(tree map[string]any, prefix string, fields []leaf) {
	for _, l := range fields {
		name := l.envName(prefix)
		if val := os.Getenv(name); val != "" {
			setByPath(tree, l.key, val)
			slog.Debug("Loaded env binding", "env", name, "path", l.key)
		}
	}
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由配置 key 中的 "." 替换为 "-" 得到，例如 server.addr → --server-addr。
func applyCLIFlags(cmd *cli.Command, tree map[string]any, fields []leaf) {
	for _, l := range fields {
		flag := l.flagName()
		if !cmd.IsSet(flag) {
			continue
		}
		if val, ok := flagValue(cmd, flag, l.typ); ok {
			setByPath(tree, l.key, val)
		}
	}
}

// flagValue 按字段类型读取 flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, flag string, typ reflect.Type) (any, bool) {
	if typ == durationType {
		return cmd.Duration(flag), true
	}

	switch typ.Kind() {
	case reflect.String:
		return cmd.String(flag), true
	case reflect.Bool:
		return cmd.Bool(flag), true
	case reflect.Int:
		return cmd.Int(flag), true
	case reflect.Int64:
		return cmd.Int64(flag), true
	case reflect.Float64:
		return cmd.Float64(flag), true
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.String {
			return cmd.StringSlice(flag), true
		}
	}

	return nil, false
}

// MarshalYAML 将配置结构体输出为 YAML，key 使用 json tag。
func MarshalYAML(cfg any) ([]byte, error) {
	return yamlv3.Marshal(toTree(cfg, true))
}

// MarshalJSON 将配置结构体输出为缩进的 JSON，key 使用 json tag。
func MarshalJSON(cfg any) ([]byte, error) {
	return json.MarshalIndent(toTree(cfg, true), "", "  ")
}
