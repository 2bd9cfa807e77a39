package templexp

import (
	"fmt"
	"maps"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量快照
// ═══════════════════════════════════════════════════════════════════════════

// environ 生成当前环境变量快照。
func environ() map[string]string {
	vars := make(map[string]string)
	for _, env := range os.Environ() {
		if name, value, ok := strings.Cut(env, "="); ok {
			vars[name] = value
		}
	}

	return vars
}

// expander 持有一次展开使用的变量，":=" 赋值只写入这份快照。
type expander struct {
	vars map[string]string
}

// ═══════════════════════════════════════════════════════════════════════════
// Shell Parameter Expansion
// ═══════════════════════════════════════════════════════════════════════════

func isVarNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isVarNameChar(ch byte) bool {
	return isVarNameStart(ch) || (ch >= '0' && ch <= '9')
}

// parameter 是 ${...} 内部的一个表达式，例如 NAME:-word。
type parameter struct {
	name string
	op   string
	word string
}

func parseParameter(expr string) (parameter, bool) {
	if expr == "" || !isVarNameStart(expr[0]) {
		return parameter{}, false
	}

	i := 1
	for i < len(expr) && isVarNameChar(expr[i]) {
		i++
	}

	p := parameter{name: expr[:i]}
	rest := expr[i:]
	switch {
	case rest == "":
		return p, true
	case len(rest) >= 2 && rest[0] == ':' && strings.IndexByte("-+?=", rest[1]) >= 0:
		p.op, p.word = rest[:2], rest[2:]
		return p, true
	case strings.IndexByte("-+?=", rest[0]) >= 0:
		p.op, p.word = rest[:1], rest[1:]
		return p, true
	}

	return parameter{}, false
}

func requiredError(name, word string) error {
	if word == "" {
		return fmt.Errorf("templexp: %s: parameter null or not set", name)
	}

	return fmt.Errorf("templexp: %s: %s", name, word)
}

func (e *expander) word(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return e.expand(word)
}

// evaluate 计算单个参数表达式；ok 为 false 表示表达式无法识别。
func (e *expander) evaluate(expr string) (string, bool, error) {
	p, ok := parseParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := e.vars[p.name]
	// 带冒号的运算符把空值视为未设置
	present := isSet
	if strings.HasPrefix(p.op, ":") {
		present = isSet && val != ""
	}

	switch strings.TrimPrefix(p.op, ":") {
	case "":
		return val, true, nil
	case "-":
		if present {
			return val, true, nil
		}
		out, err := e.word(p.word)
		return out, err == nil, err
	case "+":
		if !present {
			return "", true, nil
		}
		out, err := e.word(p.word)
		return out, err == nil, err
	case "?":
		if !present {
			return "", false, requiredError(p.name, p.word)
		}
		return val, true, nil
	case "=":
		if present {
			return val, true, nil
		}
		out, err := e.word(p.word)
		if err != nil {
			return "", false, err
		}
		e.vars[p.name] = out
		return out, true, nil
	}

	return "", false, nil
}

func (e *expander) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '$' || i+1 >= len(text) {
			buf.WriteByte(ch)
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte(ch)
			i++
			continue
		}

		end := findMatchingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte(ch)
			i++
			continue
		}

		expanded, ok, err := e.evaluate(text[i+2 : end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}

		i = end + 1
	}

	return buf.String(), nil
}

// findMatchingBrace 返回与 start 之前的 "${" 匹配的 } 位置，找不到返回 -1。
func findMatchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// ═══════════════════════════════════════════════════════════════════════════
// 入口
// ═══════════════════════════════════════════════════════════════════════════

// ExpandTemplate 使用当前环境变量对输入字符串执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	e := &expander{vars: environ()}
	return e.expand(text)
}

// ExpandWith 与 [ExpandTemplate] 相同，但使用 vars 代替环境变量。
//
// vars 不会被修改，":=" 赋值写入内部副本。
func ExpandWith(text string, vars map[string]string) (string, error) {
	e := &expander{vars: maps.Clone(vars)}
	if e.vars == nil {
		e.vars = make(map[string]string)
	}

	return e.expand(text)
}
