package citation

import (
	"context"
	"log/slog"
)

// Builder 持有已校验的模板与数据，可重复调用 [Builder.Build]。
//
// 构造后不再修改，可并发使用。
type Builder struct {
	template string
	data     map[string]string
	opts     options
}

// New 校验模板与数据并返回 Builder。
//
// 多行模板会先去掉 \r、\n 折叠为一行。
// 模板括号或 token 数量不匹配时返回 [ErrInvalidTemplate]；
// data 不是 key 为字符串的 map 或结构体时返回 [ErrInvalidDataMapping]。
func New(template string, data any, opts ...Option) (*Builder, error) {
	o := newOptions(opts)

	tpl := foldLines(template)
	if err := validate(tpl, o.strict); err != nil {
		return nil, err
	}

	values, err := normalizeData(data)
	if err != nil {
		return nil, err
	}

	return &Builder{
		template: tpl,
		data:     values,
		opts:     o,
	}, nil
}

// Render 是 New + Build 的便捷写法。
func Render(template string, data any, opts ...Option) (string, error) {
	b, err := New(template, data, opts...)
	if err != nil {
		return "", err
	}

	return b.Build(), nil
}

// Template 返回折叠换行后的模板。
func (b *Builder) Template() string {
	return b.template
}

// Build 生成引用文本。
//
// 反复解析直到不再有未转义的 @，最后统一反转义一次。
// 某一轮解析没有任何变化时提前结束，保证循环一定终止。
func (b *Builder) Build() string {
	citation := b.template
	for pass := 1; b.opts.maxPasses == 0 || pass <= b.opts.maxPasses; pass++ {
		b.trace("parsing", "pass", pass, "citation", citation)
		next := b.parse(citation)
		b.trace("parsed", "pass", pass, "citation", next)

		if next == citation {
			break
		}
		citation = next
		if !hasUnescapedAt(citation) {
			break
		}
	}

	return Unescape(citation)
}

func (b *Builder) trace(msg string, args ...any) {
	if !b.opts.debug {
		return
	}
	b.opts.logger.Log(context.Background(), slog.LevelDebug, "citation: "+msg, args...)
}
