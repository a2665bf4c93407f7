// Package web 内嵌排课网格页面
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate 网格页面模板名
const IndexTemplate = "index.html"

// Templates 解析内嵌模板，供 gin.Engine.SetHTMLTemplate 使用
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
