package report

import "errors"

// ErrInvalidInput 输入不是合法的 UTF-8 文本
var ErrInvalidInput = errors.New("report: invalid input")

// Table 从管道符表格中解析出的结构化表格
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Section 回答中的一个段落块，Title 为空表示没有标题
type Section struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Table   *Table `json:"table,omitempty"`
}

func (s Section) empty() bool {
	return s.Content == "" && s.Table == nil
}
