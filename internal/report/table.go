package report

import "strings"

// ExtractTable 从一组原始行中提取表格。
// 只看含有 '|' 的行，分隔行不参与解析；列数与表头不一致的行被丢弃。
func ExtractTable(lines []string) (*Table, bool) {
	var tableLines []string
	for _, line := range lines {
		if strings.Contains(line, "|") && !isSeparatorLine(line) {
			tableLines = append(tableLines, line)
		}
	}
	// 至少需要表头和一行数据
	if len(tableLines) < 2 {
		return nil, false
	}

	headers := splitRow(tableLines[0])
	if len(headers) == 0 {
		return nil, false
	}

	var rows [][]string
	for _, line := range tableLines[1:] {
		row := splitRow(line)
		if len(row) != len(headers) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, false
	}

	return &Table{Headers: headers, Rows: rows}, true
}

// isSeparatorLine 判断形如 |---|:--:| 的对齐行
func isSeparatorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitRow 按 '|' 切分一行，去掉首尾管道符产生的空单元格
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
