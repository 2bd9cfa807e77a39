package citation

import "strings"

// resolution 记录一个片段文本及其解析结果。
type resolution struct {
	segment string
	text    string
}

// parse 对模板做一轮解析：解析所有顶层片段，并按文本整体替换。
//
// 相同文本的片段只解析一次，替换时所有出现位置一起替换。
func (b *Builder) parse(tpl string) string {
	var (
		solved []resolution
		seen   = make(map[string]bool)
	)
	for _, sp := range segments(tpl) {
		segment := tpl[sp.start : sp.end+1]
		if seen[segment] {
			continue
		}
		seen[segment] = true

		if isLiteral(segment) {
			continue
		}
		interior := segment[1 : len(segment)-1]
		if isNested(segment) {
			solved = append(solved, resolution{segment: segment, text: "{" + b.parse(interior) + "}"})
			continue
		}
		solved = append(solved, resolution{segment: segment, text: b.expand(interior)})
	}

	for _, r := range solved {
		tpl = strings.ReplaceAll(tpl, r.segment, r.text)
	}

	return tpl
}

// expand 用数据替换叶子片段中的 token，返回去掉括号后的文本。
//
// token 无值（或只有反斜杠）时整个片段变为空串；debug 模式下改为 [key] 占位。
func (b *Builder) expand(segment string) string {
	b.trace("segment", "text", segment)

	_, key := findToken(segment, 0)
	if key == "" {
		return ""
	}
	b.trace("token", "key", key)

	// 值末尾的反斜杠会转义片段的右括号，插入前去掉
	if value := strings.TrimRight(b.resolve(key), `\`); value != "" {
		return replaceToken(segment, key, Escape(value))
	}
	if b.opts.debug {
		return replaceToken(segment, key, "["+key+"]")
	}

	return ""
}

// resolve 查找 key 的值。
//
// 组合 token（A+B+C）返回所有非空子 key 的值，按列出顺序以 ", " 连接。
func (b *Builder) resolve(key string) string {
	if !strings.Contains(key, "+") {
		return b.data[key]
	}

	var values []string
	for _, sub := range strings.Split(key, "+") {
		if v := b.data[sub]; v != "" {
			values = append(values, v)
		}
	}

	return strings.Join(values, ", ")
}

// replaceToken 将 s 中所有未转义且 key 完全相同的 @key 替换为 repl。
func replaceToken(s, key, repl string) string {
	var buf strings.Builder
	buf.Grow(len(s) + len(repl))

	last := 0
	for from := 0; ; {
		start, k := findToken(s, from)
		if start < 0 {
			break
		}
		end := start + 1 + len(k)
		if k == key {
			buf.WriteString(s[last:start])
			buf.WriteString(repl)
			last = end
		}
		from = end
	}
	buf.WriteString(s[last:])

	return buf.String()
}
