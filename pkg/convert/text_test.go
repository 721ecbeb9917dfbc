package convert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLines(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			name:   "Tj with Td line breaks",
			stream: "BT /F1 12 Tf 72 720 Td (Hello) Tj 0 -14 Td (World) Tj ET",
			want:   []string{"Hello", "World"},
		},
		{
			name:   "TJ kerning and word gaps",
			stream: "BT [(Hel) -20 (lo) -400 (there)] TJ ET",
			want:   []string{"Hello there"},
		},
		{
			name:   "T* and quote operators",
			stream: "BT (one) Tj T* (two) Tj (three) ' 1 2 (four) \" ET",
			want:   []string{"one", "two", "three", "four"},
		},
		{
			name:   "escapes and nested parentheses",
			stream: `BT (a \(b\) (c) \\ d\101) Tj ET`,
			want:   []string{`a (b) (c) \ dA`},
		},
		{
			name:   "hex strings",
			stream: "BT <48656C6C6F> Tj ET",
			want:   []string{"Hello"},
		},
		{
			name:   "Tm baselines",
			stream: "BT 1 0 0 1 72 700 Tm (top) Tj 1 0 0 1 200 700 Tm (right) Tj 1 0 0 1 72 680 Tm (below) Tj ET",
			want:   []string{"top right", "below"},
		},
		{
			name:   "separate text objects",
			stream: "BT (first) Tj ET BT (second) Tj ET",
			want:   []string{"first", "second"},
		},
		{
			name:   "graphics and dictionaries ignored",
			stream: "q 1 0 0 1 0 0 cm /GS1 gs BT /Span << /ActualText (x) >> BDC (text) Tj EMC ET Q % comment (no)",
			want:   []string{"text"},
		},
		{
			name:   "no text",
			stream: "q 0 0 100 100 re f Q",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextLines([]byte(tt.stream)))
		})
	}
}

func TestTextLines_Latin1(t *testing.T) {
	got := TextLines([]byte("BT (caf\\351) Tj ET"))
	assert.Equal(t, []string{"café"}, got)
}

func TestTextLines_HostileStreams(t *testing.T) {
	const size = 8 << 20

	t.Run("stray closers", func(t *testing.T) {
		for _, c := range []string{")", "]", ">", "}"} {
			stream := append(bytes.Repeat([]byte(c), size), []byte(" BT (After) Tj ET")...)
			assert.Equal(t, []string{"After"}, TextLines(stream), "closer %q", c)
		}
	})

	t.Run("unclosed arrays", func(t *testing.T) {
		assert.Empty(t, TextLines(bytes.Repeat([]byte("["), size)))
	})

	t.Run("deep but closed arrays", func(t *testing.T) {
		nested := strings.Repeat("[", 1000) + "(x)" + strings.Repeat("]", 1000)
		stream := []byte(nested + " TJ BT (After) Tj ET")
		assert.Equal(t, []string{"After"}, TextLines(stream))
	})
}
