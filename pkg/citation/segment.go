package citation

// span 是一个顶层片段在模板中的闭区间 [start, end]，包含两侧括号。
type span struct {
	start int
	end   int
}

// segments 用栈扫描模板，返回所有顶层片段。
//
// 内层的 } 只弹栈不产出；栈中仅剩一个位置时遇到的 } 才结束一个顶层片段。
// 结果按闭合顺序排列。没有对应 { 的 } 被忽略。
func segments(tpl string) []span {
	var (
		stack []int
		spans []span
	)
	for i := range len(tpl) {
		if isEscaped(tpl, i) {
			continue
		}
		switch tpl[i] {
		case '{':
			stack = append(stack, i)
		case '}':
			switch len(stack) {
			case 0:
			case 1:
				spans = append(spans, span{start: stack[0], end: i})
				stack = stack[:0]
			default:
				stack = stack[:len(stack)-1]
			}
		}
	}

	return spans
}

// isNested 判断片段内部（跳过开头的 {）是否还有未转义的 {。
func isNested(segment string) bool {
	for i := 1; i < len(segment); i++ {
		if segment[i] == '{' && !isEscaped(segment, i) {
			return true
		}
	}

	return false
}

// isLiteral 判断片段是否不含任何未转义的 token。
func isLiteral(segment string) bool {
	start, _ := findToken(segment, 0)
	return start < 0
}

// findToken 从 from 开始查找第一个未转义的 @key，返回 @ 的位置与 key。
//
// key 由字母、数字、下划线与 + 组成；找不到时返回 -1。
func findToken(s string, from int) (int, string) {
	for i := from; i < len(s); i++ {
		if s[i] != '@' || isEscaped(s, i) {
			continue
		}
		j := i + 1
		for j < len(s) && (isKeyChar(s[j]) || s[j] == '+') {
			j++
		}
		if j > i+1 {
			return i, s[i+1 : j]
		}
	}

	return -1, ""
}
