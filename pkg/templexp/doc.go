// Package templexp 提供配置与数据文件的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，适合在 YAML/JSON/TOML 等文件中做轻量替换。
// 不执行命令、不引入模板引擎，强调可读性与可预测性。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前展开过程
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 展开数据文件中的环境变量引用：
//
//	content := `publisher: "${BOOK_PUBLISHER}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 使用默认值处理缺失的环境变量：
//
//	content := `year: "${BOOK_YEAR:-n.d.}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 不读取环境变量，改用指定的变量集合：
//
//	expanded, err := templexp.ExpandWith(content, map[string]string{"BOOK_YEAR": "1998"})
//
// 详见 [ExpandTemplate] 与 [ExpandWith] 文档。
package templexp
