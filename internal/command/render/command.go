// Package render 提供本地渲染引用的命令。
package render

import (
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
)

// Command 渲染命令
var Command = &cli.Command{
	Name:  "render",
	Usage: "根据模板与数据渲染引用文本",
	Description: `数据来自 --citation-data-file 与 --set，--set 覆盖文件中的同名字段。
数据文件包含多条记录时，每条记录输出一行。`,
	Flags:  slices.Concat(command.CitationFlags(), command.LogFlags()),
	Action: action,
}
