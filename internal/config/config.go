// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .citebuild.yaml 等（见 cfgm.DefaultPaths）
//  3. 环境变量 - CITEBUILD_ 前缀
//  4. CLI flags - 例如 --citation-debug
package config

import (
	"time"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "CITEBUILD_"

// Config 应用配置。
type Config struct {
	Citation CitationConfig `json:"citation" desc:"引用渲染配置"`
	Server   ServerConfig   `json:"server" desc:"服务端配置"`
	Client   ClientConfig   `json:"client" desc:"客户端配置"`
	Log      LogConfig      `json:"log" desc:"日志配置"`
}

// CitationConfig 引用渲染配置。
type CitationConfig struct {
	Template     string `json:"template" desc:"引用模板，例如 {@title}{, by @author}"`
	TemplateFile string `json:"template-file" desc:"模板文件路径，优先级低于 template"`
	DataFile     string `json:"data-file" desc:"数据文件路径 (.json/.yaml/.toml)"`
	ExpandEnv    bool   `json:"expand-env" desc:"对数据文件执行 ${VAR} 展开"`
	Debug        bool   `json:"debug" desc:"无值 token 渲染为 [key] 并输出解析轨迹"`
	Strict       bool   `json:"strict" desc:"严格校验括号嵌套"`
	MaxPasses    int    `json:"max-passes" desc:"解析轮数上限，0 表示不限制"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	MaxBody  int64         `json:"max-body" desc:"请求体大小上限 (字节)"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 debug|info|warn|error"`
	Format string `json:"format" desc:"日志格式 text|json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Citation: CitationConfig{
			ExpandEnv: true,
		},
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
			MaxBody:  1 << 20,
		},
		Client: ClientConfig{
			URL:     "http://localhost:40117",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
