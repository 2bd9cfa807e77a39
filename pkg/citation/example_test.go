package citation_test

import (
	"fmt"

	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

// Example_book 演示可选片段与嵌套片段。
func Example_book() {
	tpl := `{@title}{, by @author}{, @co_author}{, published by @publisher{, @publication_year}}`

	text, err := citation.Render(tpl, map[string]string{
		"title":            "A Brief History of Time",
		"author":           "Stephen Hawking",
		"publisher":        "Bantam",
		"publication_year": "1998",
	})
	if err != nil {
		fmt.Println("渲染失败:", err)

		return
	}
	fmt.Println(text)

	// Output:
	// A Brief History of Time, by Stephen Hawking, published by Bantam, 1998
}

// Example_combo 演示组合 token。
func Example_combo() {
	tpl := `{@title}{, by @first+second+third}`

	text, _ := citation.Render(tpl, map[string]string{
		"title":  "Paper",
		"first":  "John",
		"third":  "Alice",
		"second": "",
	})
	fmt.Println(text)

	// Output:
	// Paper, by John, Alice
}

// Example_debug 演示调试模式下的 [key] 占位。
func Example_debug() {
	b, err := citation.New(`{@title}{, by @author}`, map[string]string{"title": "Draft"},
		citation.WithDebug(true),
	)
	if err != nil {
		fmt.Println("模板无效:", err)

		return
	}
	fmt.Println(b.Build())

	// Output:
	// Draft, by [author]
}
