package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextService_Sanitize(t *testing.T) {
	ts := NewTextService()
	assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;", ts.Sanitize("  <b>Tom & Jerry</b> "))
	assert.Equal(t, "&#34;quoted&#34;", ts.Sanitize(`"quoted"`))
}

func TestTextService_ClearAndReduce(t *testing.T) {
	ts := NewTextService()

	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"tags and entities", "<p>a &amp; b</p>", 100, "a & b"},
		{"collapses whitespace", "<ul>\n<li>one</li>\n\n<li>two</li></ul>", 100, "one two"},
		{"cuts on word boundary", "soft cotton crew neck tee", 15, "soft cotton"},
		{"long single word", "supercalifragilistic", 5, "super"},
		{"multibyte runes", "футболка хлопок", 9, "футболка"},
		{"short input untouched", "mug", 10, "mug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ts.ClearAndReduce(tt.input, tt.length))
		})
	}
}
