package report

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoHeadings(t *testing.T) {
	input := "\n  Apple and Microsoft are both large.\nThey compete in several markets.  \n\n"

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, strings.TrimSpace(input), sections[0].Content)
	assert.Nil(t, sections[0].Table)
}

func TestParse_BlankInput(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n\t\n\n"} {
		sections, err := Parse(input)
		require.NoError(t, err)
		assert.Empty(t, sections, "input %q", input)
		assert.NotNil(t, sections)
	}
}

func TestParse_HeadingRoundTrip(t *testing.T) {
	sections, err := Parse("## Title\ncontent")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, Section{Title: "Title", Content: "content"}, sections[0])
}

func TestParse_BoldHeadingMatchesHashHeading(t *testing.T) {
	hash, err := Parse("## Title\ncontent")
	require.NoError(t, err)
	bold, err := Parse("**Title**\ncontent")
	require.NoError(t, err)
	assert.Equal(t, hash, bold)
}

func TestParse_EndToEnd(t *testing.T) {
	input := "## Summary Table\n| Metric | A | B |\n|---|---|---|\n| Revenue | 10 | 20 |\n\n## Conclusion\nA wins overall."

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "Summary Table", sections[0].Title)
	assert.Equal(t, "", sections[0].Content)
	require.NotNil(t, sections[0].Table)
	assert.Equal(t, []string{"Metric", "A", "B"}, sections[0].Table.Headers)
	assert.Equal(t, [][]string{{"Revenue", "10", "20"}}, sections[0].Table.Rows)

	assert.Equal(t, Section{Title: "Conclusion", Content: "A wins overall."}, sections[1])
}

func TestParse_Preamble(t *testing.T) {
	input := "\n\nHere is the analysis.\n## Overview\nBoth are big."

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, Section{Content: "Here is the analysis."}, sections[0])
	assert.Equal(t, Section{Title: "Overview", Content: "Both are big."}, sections[1])
}

func TestParse_EmptySectionsDropped(t *testing.T) {
	input := "## Empty\n\n\n## Also Empty\n## Filled\ntext\n## Trailing\n   "

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Filled", sections[0].Title)
}

func TestParse_TitleCleanup(t *testing.T) {
	sections, err := Parse("##   **Key Performance Indicators**  \nx\n### Apple SWOT\ny")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Key Performance Indicators", sections[0].Title)
	assert.Equal(t, "Apple SWOT", sections[1].Title)
}

func TestParse_InlineBoldIsNotHeading(t *testing.T) {
	input := "## Notes\nThis is **important** text.\n**Apple** beats Microsoft"

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "This is **important** text.\n**Apple** beats Microsoft", sections[0].Content)
}

func TestParse_NestedBoldHeading(t *testing.T) {
	sections, err := Parse("## Notes\n**Apple** vs **Microsoft**\nbody")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, Section{Title: "Apple vs Microsoft", Content: "body"}, sections[0])

	for _, l := range FormatContent(sections[0].Content) {
		assert.NotContains(t, l.Text, "**")
	}
}

func TestParse_LargeInput(t *testing.T) {
	const n = 200000
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i%1000 == 0 {
			b.WriteString("## Part\n")
		}
		b.WriteString("some prose line of text\n")
	}

	start := time.Now()
	sections, err := Parse(b.String())
	require.NoError(t, err)
	assert.Len(t, sections, n/1000)
	assert.Less(t, time.Since(start), 5*time.Second)

	single, err := Parse(strings.Repeat("some prose line of text\n", n))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, n, strings.Count(single[0].Content, "\n")+1)
}

func TestParse_TableWithSurroundingText(t *testing.T) {
	input := strings.Join([]string{
		"## SWOT Analysis",
		"Intro line.",
		"| Category | Analysis |",
		"|----------|----------|",
		"| Strengths | Brand |",
		"| Weaknesses | Cost | extra |",
		"Closing line.",
	}, "\n")

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.NotNil(t, sections[0].Table)
	assert.Equal(t, [][]string{{"Strengths", "Brand"}}, sections[0].Table.Rows)
	// 表格行（包括被丢弃的行）都不会留在正文中
	assert.Equal(t, "Intro line.\nClosing line.", sections[0].Content)
}

func TestParse_InvalidTableKeepsLines(t *testing.T) {
	input := "## Odd\n| a | b |\n| 1 | 2 | 3 |"

	sections, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Nil(t, sections[0].Table)
	assert.Equal(t, "| a | b |\n| 1 | 2 | 3 |", sections[0].Content)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse("## ok\n\xff\xfe")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParse_Deterministic(t *testing.T) {
	input := "intro\n## A\n| x | y |\n|--|--|\n| 1 | 2 |\n**B**\n- one\n- two"
	want, err := Parse(input)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Parse(input)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestHeadingTitle(t *testing.T) {
	tests := []struct {
		line  string
		title string
		ok    bool
	}{
		{"## Summary Table", "Summary Table", true},
		{"##Summary", "Summary", true},
		{"**Summary**", "Summary", true},
		{"  **Summary**  ", "Summary", true},
		{"**Summary** extra", "", false},
		{"prefix **Summary**", "", false},
		{"**a** and **b**", "a and b", true},
		{"**Summary**:", "", false},
		{"****", "", false},
		{"##", "", false},
		{"plain text", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		title, ok := headingTitle(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.title, title, "line %q", tt.line)
	}
}
