// Package citation 根据声明式模板与 key-value 数据生成引用文本。
//
// 模板由可选片段组成，片段用 {} 包裹并由 @key 控制：
// key 有值时输出片段，无值时整个片段（包括其中的字面文本）消失。
// 片段可以任意嵌套，内层片段缺失只会折叠内层部分。
//
// # 语法
//
//   - {...} - 可选片段
//   - @key - token，key 由字母、数字、下划线组成
//   - @A+B+C - 组合 token，输出所有非空值，以 ", " 连接
//   - \{ \} \@ - 字面字符，不参与解析，最终输出时去掉反斜杠
//
// # 语义说明
//
//  1. 模板中未转义的 { 与 } 数量必须相等，且等于 @token 数量
//  2. 该校验只比较数量，}{}{ 这类错位也会通过；需要时使用 [WithStrictValidation]
//  3. 值为空串、nil、false 或 key 不存在时视为无值
//  4. 写入模板的值会被转义，值中的 {、}、@ 不会被当作语法
//  5. 文本完全相同的片段解析结果相同，并一起替换
//
// # 快速开始
//
//	tpl := `{@title}{, by @author}{, @co_author}{, published by @publisher{, @year}}`
//	text, err := citation.Render(tpl, map[string]string{
//	    "title":     "A Brief History of Time",
//	    "author":    "Stephen Hawking",
//	    "publisher": "Bantam",
//	    "year":      "1998",
//	})
//	// A Brief History of Time, by Stephen Hawking, published by Bantam, 1998
//
// 调试模板时可启用 [WithDebug]，无值 token 会渲染为 [key]：
//
//	b, err := citation.New(tpl, data, citation.WithDebug(true))
//
// 详见 [New] 与 [Builder.Build] 文档。
package citation
