package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// pending 正在累积的段落，内容为 lines[start:end]
type pending struct {
	title string
	start int
	end   int
}

// splitState 按行折叠时携带的累加器，每一步都返回新的值。
// 段落内容只记录行号区间，结束时再从原始行切片中截取。
type splitState struct {
	sections []Section
	current  *pending
}

// Parse 将模型输出的文本拆分为有序的段落列表。
// 以 "## " 开头或整行被 ** 包裹的行视为标题；第一个标题之前的非空文本成为无标题段落。
func Parse(raw string) ([]Section, error) {
	if !utf8.ValidString(raw) {
		return nil, fmt.Errorf("parse response: %w", ErrInvalidInput)
	}

	lines := strings.Split(raw, "\n")
	state := splitState{}
	for i := range lines {
		state = step(state, lines, i)
	}
	state = flush(state, lines)

	if state.sections == nil {
		return []Section{}, nil
	}
	return state.sections, nil
}

func step(st splitState, lines []string, i int) splitState {
	line := lines[i]
	if title, ok := headingTitle(line); ok {
		st = flush(st, lines)
		st.current = &pending{title: title, start: i + 1, end: i + 1}
		return st
	}

	if st.current != nil {
		return splitState{sections: st.sections, current: &pending{title: st.current.title, start: st.current.start, end: i + 1}}
	}

	// 第一个标题之前的内容
	if strings.TrimSpace(line) != "" {
		st.current = &pending{start: i, end: i + 1}
	}
	return st
}

// flush 结束当前段落，非空时追加到结果中
func flush(st splitState, lines []string) splitState {
	if st.current == nil {
		return st
	}

	section := finalize(st.current.title, lines[st.current.start:st.current.end])
	next := splitState{sections: st.sections}
	if !section.empty() {
		next.sections = append(st.sections, section)
	}
	return next
}

func finalize(title string, lines []string) Section {
	section := Section{Title: title}

	table, ok := ExtractTable(lines)
	if !ok {
		section.Content = strings.TrimSpace(strings.Join(lines, "\n"))
		return section
	}

	section.Table = table
	var rest []string
	for _, line := range lines {
		if !strings.Contains(line, "|") {
			rest = append(rest, line)
		}
	}
	section.Content = strings.TrimSpace(strings.Join(rest, "\n"))
	return section
}

// headingTitle 判断一行是否为标题，返回去掉 ** 之后的标题文本
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	if rest, ok := strings.CutPrefix(trimmed, "##"); ok && rest != "" {
		// ### 这类更深的标题同样截掉多余的 '#'
		rest = strings.TrimLeft(rest, "#")
		return cleanTitle(rest), true
	}

	if inner, ok := boldWrapped(trimmed); ok {
		return cleanTitle(inner), true
	}

	return "", false
}

// boldWrapped 整行首尾各有一对 **，中间至少一个字符；内部的 ** 由 cleanTitle 去掉
func boldWrapped(trimmed string) (string, bool) {
	if len(trimmed) <= 4 || !strings.HasPrefix(trimmed, "**") || !strings.HasSuffix(trimmed, "**") {
		return "", false
	}
	return trimmed[2 : len(trimmed)-2], true
}

func cleanTitle(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
