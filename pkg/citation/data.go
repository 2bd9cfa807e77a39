package citation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// normalizeData 将数据统一为 map[string]string，只保留非空值。
//
// 支持任意 key 为字符串的 map 以及结构体（按 json tag 取 key）。
func normalizeData(data any) (map[string]string, error) {
	if m, ok := data.(map[string]string); ok {
		out := make(map[string]string, len(m))
		for k, v := range m {
			if v != "" {
				out[k] = v
			}
		}

		return out, nil
	}

	if data == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidDataMapping)
	}
	val := reflect.ValueOf(data)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidDataMapping, data)
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key must be string, got %T", ErrInvalidDataMapping, data)
		}
	case reflect.Struct:
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidDataMapping, data)
	}

	raw := make(map[string]any)
	if err := decodeData(val.Interface(), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataMapping, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s := stringify(v); s != "" {
			out[k] = s
		}
	}

	return out, nil
}

func decodeData(input any, out *map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// stringify 将单个值转为字符串；nil、false 与空值返回 ""。
func stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return ""
	case []string:
		return joinValues(typed)
	case []any:
		parts := make([]string, len(typed))
		for i, item := range typed {
			parts[i] = stringify(item)
		}
		return joinValues(parts)
	case fmt.Stringer:
		return typed.String()
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return ""
		}
		return stringify(val.Elem().Interface())
	}

	return fmt.Sprint(v)
}

// joinValues 以 ", " 连接非空元素。
func joinValues(values []string) string {
	nonEmpty := values[:0:0]
	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	return strings.Join(nonEmpty, ", ")
}
