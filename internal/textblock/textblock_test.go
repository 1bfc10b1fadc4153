package textblock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParse_BlankLinesOnly(t *testing.T) {
	assert.Empty(t, Parse("\n\n  \n\t\n"))
}

func TestParse_BulletsAndParagraph(t *testing.T) {
	blocks := Parse("- Built APIs\n- Improved perf\n\nLed a team")
	require.Len(t, blocks, 3)
	assert.Equal(t, Block{Kind: ListItem, Content: "Built APIs"}, blocks[0])
	assert.Equal(t, Block{Kind: ListItem, Content: "Improved perf"}, blocks[1])
	assert.Equal(t, Block{Kind: Paragraph, Content: "Led a team"}, blocks[2])
}

func TestParse_NumberedList(t *testing.T) {
	blocks := Parse("1. First\n2. Second")
	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Kind: ListItem, Content: "First"}, blocks[0])
	assert.Equal(t, Block{Kind: ListItem, Content: "Second"}, blocks[1])
}

func TestParse_ParenNumberedList(t *testing.T) {
	blocks := Parse("1) First\n2) Second")
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.Equal(t, ListItem, b.Kind)
	}
}

func TestParse_MarkerVariants(t *testing.T) {
	for _, marker := range []string{"-", "*", "•", "◦", "▪", "▫"} {
		blocks := Parse(marker + " item text")
		require.Len(t, blocks, 1, "marker %q", marker)
		assert.Equal(t, Block{Kind: ListItem, Content: "item text"}, blocks[0])
	}
}

func TestParse_SoftWrappedParagraphJoined(t *testing.T) {
	blocks := Parse("This sentence was\nsoft wrapped across\nthree lines")
	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, "This sentence was soft wrapped across three lines", blocks[0].Content)
}

func TestParse_ConsecutiveBlankLinesCollapse(t *testing.T) {
	blocks := Parse("first\n\n\n\nsecond")
	require.Len(t, blocks, 2)
	assert.Equal(t, "first", blocks[0].Content)
	assert.Equal(t, "second", blocks[1].Content)
}

func TestParse_MarkerOnlyLine(t *testing.T) {
	blocks := Parse("- item\n-\ntrailing")
	require.Len(t, blocks, 3)
	assert.Equal(t, Block{Kind: ListItem, Content: "item"}, blocks[0])
	assert.Equal(t, Block{Kind: ListItem, Content: ""}, blocks[1])
	assert.Equal(t, Block{Kind: Paragraph, Content: "trailing"}, blocks[2])
}

func TestParse_MixedMarkersTreatedAlike(t *testing.T) {
	blocks := Parse("- bullet\n1. numbered\n* star")
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, ListItem, b.Kind)
	}
}

func TestParse_BlankLineBetweenBulletAndParagraph(t *testing.T) {
	blocks := Parse("intro line\n- point one\n\nclosing thought")
	require.Len(t, blocks, 3)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, ListItem, blocks[1].Kind)
	assert.Equal(t, Paragraph, blocks[2].Kind)
}

func TestParse_OrderPreservesSourceLines(t *testing.T) {
	input := "alpha\n- beta\ngamma\n\n- delta\nepsilon zeta"
	blocks := Parse(input)

	var joined []string
	for _, b := range blocks {
		joined = append(joined, b.Content)
	}
	all := strings.Join(joined, " ")
	for _, word := range []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"} {
		assert.Contains(t, all, word)
	}
	// beta precedes gamma which precedes delta in output
	assert.Less(t, strings.Index(all, "beta"), strings.Index(all, "gamma"))
	assert.Less(t, strings.Index(all, "gamma"), strings.Index(all, "delta"))
}

func TestParse_Reparse_IsStable(t *testing.T) {
	input := "para one\ncontinued\n\n- bullet a\n- bullet b\n\npara two"
	first := Parse(input)

	// Rebuild text from blocks and parse again: structure must be equivalent.
	var sb strings.Builder
	for _, b := range first {
		if b.Kind == ListItem {
			sb.WriteString("- " + b.Content + "\n")
		} else {
			sb.WriteString(b.Content + "\n\n")
		}
	}
	second := Parse(sb.String())
	assert.Equal(t, first, second)
}
