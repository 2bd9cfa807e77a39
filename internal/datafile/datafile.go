// Package datafile 从 JSON/YAML/TOML 文件加载引用数据。
//
// 文件根节点可以是单个对象（一条记录），也可以是对象列表（批量记录）。
// TOML 的根节点只能是表，批量记录写作 [[records]]；JSON/YAML 同样接受
// 仅包含 records 列表的根对象。
package datafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-citation/pkg/templexp"
)

// Record 一条数据记录，key 对应模板中的 @key。
type Record = map[string]any

var (
	// ErrUnsupportedFormat 文件扩展名不是 .json/.yaml/.yml/.toml。
	ErrUnsupportedFormat = errors.New("datafile: unsupported format")
	// ErrInvalidRecord 根节点或列表元素不是对象。
	ErrInvalidRecord = errors.New("datafile: record must be an object")
)

// recordsKey 批量记录在根对象中的 key。
const recordsKey = "records"

// Load 读取并解析数据文件，expandEnv 为 true 时先执行 ${VAR} 展开。
func Load(path string, expandEnv bool) ([]Record, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	if expandEnv {
		expanded, err := templexp.ExpandTemplate(string(content))
		if err != nil {
			return nil, fmt.Errorf("expand data file %s: %w", path, err)
		}
		content = []byte(expanded)
	}

	records, err := Parse(filepath.Ext(path), content)
	if err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}

	return records, nil
}

// Parse 按扩展名（含点，如 ".yaml"）解析内容。
func Parse(ext string, content []byte) ([]Record, error) {
	var (
		raw any
		err error
	)
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(content, &raw)
	case ".yaml", ".yml":
		err = yamlv3.Unmarshal(content, &raw)
	case ".toml":
		var table map[string]any
		err = toml.Unmarshal(content, &table)
		raw = table
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return toRecords(raw)
}

func toRecords(raw any) ([]Record, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if list, ok := typed[recordsKey]; ok && len(typed) == 1 {
			return toRecords(list)
		}
		return []Record{typed}, nil
	case []map[string]any:
		return typed, nil
	case []any:
		records := make([]Record, 0, len(typed))
		for i, item := range typed {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T", ErrInvalidRecord, i, item)
			}
			records = append(records, record)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidRecord, raw)
	}
}

// ParseAssignments 解析 key=value 形式的赋值列表，value 可以为空。
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", pair)
		}
		out[key] = value
	}

	return out, nil
}

// Apply 将 overrides 写入每条记录的副本；records 为空时返回仅含 overrides 的一条记录。
//
// override 的值按记录自身的字段做 ${key} 展开，例如 --set 'title=${title} (2nd ed.)'。
func Apply(records []Record, overrides map[string]string) ([]Record, error) {
	if len(records) == 0 {
		records = []Record{{}}
	}

	out := make([]Record, len(records))
	for i, record := range records {
		merged := maps.Clone(record)
		if merged == nil {
			merged = Record{}
		}

		vars := scalars(record)
		for k, v := range overrides {
			expanded, err := templexp.ExpandWith(v, vars)
			if err != nil {
				return nil, fmt.Errorf("record %d: set %s: %w", i, k, err)
			}
			merged[k] = expanded
		}
		out[i] = merged
	}

	return out, nil
}

// scalars 返回记录中的标量字段，作为 override 展开时的变量。
func scalars(record Record) map[string]string {
	vars := make(map[string]string, len(record))
	for k, v := range record {
		switch typed := v.(type) {
		case nil, map[string]any, []any, []map[string]any:
		case string:
			vars[k] = typed
		default:
			vars[k] = fmt.Sprint(typed)
		}
	}

	return vars
}
