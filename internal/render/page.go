package render

import (
	"strings"

	"github.com/iWorld-y/company_compare/internal/report"
)

// Page 对比报告页面的视图数据
type Page struct {
	Company1 string
	Company2 string
	Date     string
	Sections []SectionView
}

// SectionView 一个段落的展示数据
type SectionView struct {
	Title     string
	Highlight bool // 标题前显示奖杯
	Table     *TableView
	Lines     []LineView
}

type TableView struct {
	Headers []string
	Rows    [][]CellView
}

// CellView Emphasis 表示首列，Accent 表示胜出者
type CellView struct {
	Text     string
	Emphasis bool
	Accent   bool
}

type LineView struct {
	Kind string
	Text string
}

// NewPage 将解析后的段落转换为视图数据
func NewPage(company1, company2, date string, sections []report.Section) Page {
	p := Page{Company1: company1, Company2: company2, Date: date}
	for _, s := range sections {
		p.Sections = append(p.Sections, newSectionView(s))
	}
	return p
}

func newSectionView(s report.Section) SectionView {
	v := SectionView{Title: s.Title, Highlight: IsHighlightTitle(s.Title)}
	if s.Table != nil {
		v.Table = newTableView(s.Table)
		return v
	}
	for _, l := range report.FormatContent(s.Content) {
		v.Lines = append(v.Lines, LineView{Kind: l.Kind.String(), Text: l.Text})
	}
	return v
}

func newTableView(t *report.Table) *TableView {
	tv := &TableView{Headers: t.Headers}
	last := len(t.Headers) - 1
	winnerColumn := last >= 0 && strings.EqualFold(t.Headers[last], "winner")

	for _, row := range t.Rows {
		cells := make([]CellView, 0, len(row))
		for i, cell := range row {
			cells = append(cells, CellView{
				Text:     cell,
				Emphasis: i == 0,
				Accent:   strings.Contains(strings.ToLower(cell), "winner") || (i == last && winnerColumn),
			})
		}
		tv.Rows = append(tv.Rows, cells)
	}
	return tv
}

// IsHighlightTitle 标题包含 winner 或 key performance 时加奖杯
func IsHighlightTitle(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "winner") || strings.Contains(lower, "key performance")
}
