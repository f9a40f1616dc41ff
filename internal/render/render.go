package render

import (
	"embed"
	"html/template"
	"io"
	"os"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// IndexData 首页表单数据
type IndexData struct {
	Company1 string
	Company2 string
	Error    string
	Recent   []RecentItem
	Report   *Page
}

// RecentItem 历史记录列表中的一项
type RecentItem struct {
	ID       int64
	Company1 string
	Company2 string
	Date     string
}

// Index 渲染首页，Report 不为空时在表单下方展示报告
func Index(w io.Writer, data IndexData) error {
	return templates.ExecuteTemplate(w, "index.html", data)
}

// Report 渲染单独的报告页面
func Report(w io.Writer, p Page) error {
	return templates.ExecuteTemplate(w, "report.html", p)
}

// WriteReportFile 将报告写入本地 HTML 文件
func WriteReportFile(path string, p Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Report(f, p)
}
