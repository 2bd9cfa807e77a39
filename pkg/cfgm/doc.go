// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), "citebuild",
//	    cfgm.WithEnvPrefix("CITEBUILD_"),
//	)
//
// # 配置文件路径
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]）：
//   - .citebuild.yaml (当前目录)
//   - ~/.citebuild.yaml (用户主目录)
//   - /etc/citebuild/config.yaml (系统配置)
//   - config.yaml, config/config.yaml (通用路径)
//
// # 模板展开
//
// 配置文件在解析前执行 Shell 参数展开（见 templexp 包），
// 使用 [WithoutTemplateExpansion] 可禁用。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - server.addr → --server-addr
//   - citation.data-file → --citation-data-file
//
// # 输出配置
//
// [MarshalYAML] 与 [MarshalJSON] 按 json tag 输出配置，Duration 输出为 "30s" 形式。
package cfgm
