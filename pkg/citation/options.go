package citation

import "log/slog"

// options 构建选项。
type options struct {
	debug     bool         // 无值 token 渲染为 [key]，并输出解析轨迹
	logger    *slog.Logger // 解析轨迹输出位置
	strict    bool         // 额外校验括号嵌套顺序
	maxPasses int          // 不动点循环最多轮数（0 表示不限制）
}

// Option 构建选项函数。
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// WithDebug 启用调试模式。
//
// 启用后无值的 token 不再删除所在片段，而是替换为 [key]；
// 每一轮解析都会以 Debug 级别写入日志。
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.debug = enabled
	}
}

// WithLogger 设置调试轨迹的输出 logger，默认 [slog.Default]。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrictValidation 在数量校验之外检查括号的嵌套顺序。
//
// 默认校验只比较数量，}{}{ 这类模板也会通过。
func WithStrictValidation() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithMaxPasses 限制 Build 的解析轮数，n <= 0 表示不限制。
func WithMaxPasses(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPasses = n
		}
	}
}
