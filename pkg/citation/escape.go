package citation

import "strings"

var (
	escaper   = strings.NewReplacer("{", `\{`, "}", `\}`, "@", `\@`)
	unescaper = strings.NewReplacer(`\{`, "{", `\}`, "}", `\@`, "@")
)

// Escape 将值中的 {、}、@ 转义为 \{、\}、\@。
//
// 数据值写回模板前必须转义，避免后续轮次把值当作模板语法解析。
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape 是 [Escape] 的逆操作，仅在 Build 结束时执行一次。
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// isEscaped 判断 s[i] 是否被前一个反斜杠转义。
func isEscaped(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

func isKeyChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_'
}

// hasUnescapedAt 判断是否还有未转义的 @，作为不动点循环的终止条件。
func hasUnescapedAt(s string) bool {
	for i := range len(s) {
		if s[i] == '@' && !isEscaped(s, i) {
			return true
		}
	}

	return false
}
