package report

import "strings"

// LineKind 内容行的展示类型
type LineKind int

const (
	LineBreak LineKind = iota
	LinePlain
	LineBullet
	LineStrong
)

func (k LineKind) String() string {
	switch k {
	case LinePlain:
		return "plain"
	case LineBullet:
		return "bullet"
	case LineStrong:
		return "strong"
	default:
		return "break"
	}
}

// Line 一行格式化后的内容
type Line struct {
	Kind LineKind
	Text string
}

// FormatLine 按列表项、加粗行、普通行、空行的顺序判断
func FormatLine(line string) Line {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return Line{Kind: LineBullet, Text: trimmed[2:]}
	}
	// 与标题判断使用同一规则，内部的 ** 一并去掉
	if inner, ok := boldWrapped(trimmed); ok {
		return Line{Kind: LineStrong, Text: strings.ReplaceAll(inner, "**", "")}
	}
	if line != "" {
		return Line{Kind: LinePlain, Text: line}
	}
	return Line{Kind: LineBreak}
}

// FormatContent 把段落内容重新按行切分并逐行格式化
func FormatContent(content string) []Line {
	raw := strings.Split(content, "\n")
	lines := make([]Line, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, FormatLine(line))
	}
	return lines
}
