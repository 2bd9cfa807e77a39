package citation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTemplate 模板括号与 token 数量不匹配。
	ErrInvalidTemplate = errors.New("citation: invalid template")
	// ErrInvalidDataMapping 数据不是 key → value 的映射。
	ErrInvalidDataMapping = errors.New("citation: invalid data mapping")
)

var newlineRemover = strings.NewReplacer("\r", "", "\n", "")

// foldLines 将多行模板折叠为单行。
func foldLines(tpl string) string {
	return newlineRemover.Replace(tpl)
}

// balance 记录未转义的 {、} 与 @token 数量。
type balance struct {
	open   int
	close  int
	tokens int
}

func countBalance(tpl string) balance {
	var b balance
	for i := range len(tpl) {
		if isEscaped(tpl, i) {
			continue
		}
		switch tpl[i] {
		case '{':
			b.open++
		case '}':
			b.close++
		case '@':
			if i+1 < len(tpl) && isKeyChar(tpl[i+1]) {
				b.tokens++
			}
		}
	}

	return b
}

// validate 校验折叠后的模板。
//
// 数量校验并不严格：}{}{ 这类错位的括号也能通过，strict 为 true 时才检查嵌套顺序。
func validate(tpl string, strict bool) error {
	b := countBalance(tpl)
	if b.open != b.close {
		return fmt.Errorf("%w: %d '{' vs %d '}'", ErrInvalidTemplate, b.open, b.close)
	}
	if b.open != b.tokens {
		return fmt.Errorf("%w: %d bracket pairs vs %d tokens", ErrInvalidTemplate, b.open, b.tokens)
	}
	if strict {
		return checkNesting(tpl)
	}

	return nil
}

func checkNesting(tpl string) error {
	depth := 0
	for i := range len(tpl) {
		if isEscaped(tpl, i) {
			continue
		}
		switch tpl[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return fmt.Errorf("%w: unmatched '}' at offset %d", ErrInvalidTemplate, i)
			}
			depth--
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '{'", ErrInvalidTemplate, depth)
	}

	return nil
}

// Validate 校验模板语法，规则与 [New] 相同。
func Validate(template string, opts ...Option) error {
	o := newOptions(opts)
	return validate(foldLines(template), o.strict)
}

// Tokens 按出现顺序返回模板引用的全部 key（去重，组合 token 会被拆开）。
func Tokens(template string) []string {
	tpl := foldLines(template)
	seen := make(map[string]bool)
	var keys []string
	for from := 0; ; {
		start, key := findToken(tpl, from)
		if start < 0 {
			break
		}
		for _, k := range strings.Split(key, "+") {
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
		from = start + 1 + len(key)
	}

	return keys
}
