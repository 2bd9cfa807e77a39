package cfgm

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

var durationType = reflect.TypeFor[time.Duration]()

// errRootNotObject 配置文件根节点不是对象。
var errRootNotObject = errors.New("config root must be object")

// leaf 配置结构体中的一个叶子字段。
type leaf struct {
	key   string // 点分路径，如 server.max-body
	index []int  // reflect.Value.FieldByIndex 使用的字段下标
	typ   reflect.Type
}

// flagName 返回 leaf 对应的 CLI flag 名称：server.max-body → server-max-body。
func (l leaf) flagName() string {
	return strings.ReplaceAll(l.key, ".", "-")
}

// envName 返回 leaf 对应的环境变量名：citation.data-file → PREFIX_CITATION_DATA_FILE。
func (l leaf) envName(prefix string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(l.key))
}

// leaves 按声明顺序展开配置结构体，嵌套结构体的 json tag 以 "." 连接。
//
// 没有 json tag 或 tag 为 "-" 的字段被忽略。
func leaves(typ reflect.Type) []leaf {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var out []leaf
	var walk func(t reflect.Type, prefix string, index []int)
	walk = func(t reflect.Type, prefix string, index []int) {
		for i := range t.NumField() {
			field := t.Field(i)
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if !field.IsExported() || name == "" || name == "-" {
				continue
			}
			if prefix != "" {
				name = prefix + "." + name
			}
			fieldIndex := append(slices.Clone(index), i)

			if field.Type.Kind() == reflect.Struct {
				walk(field.Type, name, fieldIndex)
				continue
			}
			out = append(out, leaf{key: name, index: fieldIndex, typ: field.Type})
		}
	}
	walk(typ, "", nil)

	return out
}

// toTree 将配置结构体转换为以 json tag 为 key 的嵌套 map。
//
// export 为 true 时 Duration 输出为 "30s" 形式，用于 YAML/JSON 展示。
func toTree(cfg any, export bool) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(cfg))
	tree := make(map[string]any)
	for _, l := range leaves(val.Type()) {
		v := val.FieldByIndex(l.index).Interface()
		if d, ok := v.(time.Duration); ok && export {
			v = d.String()
		}
		setByPath(tree, l.key, v)
	}

	return tree
}

// parseFile 解析配置文件内容，.json 使用 encoding/json，其余按 YAML 处理。
func parseFile(path string, content []byte) (map[string]any, error) {
	var (
		raw any
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	switch typed := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return typed, nil
	default:
		return nil, errRootNotObject
	}
}

// merge 将 src 深度合并到 dst，同名对象递归合并，其余值直接覆盖。
func merge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcOK := value.(map[string]any)
		dstMap, dstOK := dst[key].(map[string]any)
		if srcOK && dstOK {
			merge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}

// setByPath 按点分路径写入值，缺失的中间层自动创建。
func setByPath(tree map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := tree[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			tree[part] = next
		}
		tree = next
	}
	tree[parts[len(parts)-1]] = value
}

// decode 将合并后的 map 解码到配置结构体。
//
// 文件与环境变量中的值都是字符串，"30s" 由 StringToTimeDurationHookFunc 转为 Duration，
// 数字与布尔值依赖 WeaklyTypedInput。
func decode(tree map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(tree)
}
