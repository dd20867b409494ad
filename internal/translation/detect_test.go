package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsCJK(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "english", text: "West Village", expected: false},
		{name: "empty", text: "", expected: false},
		{name: "accented latin", text: "Café", expected: false},
		{name: "chinese", text: "曼哈顿", expected: true},
		{name: "mixed", text: "Apt 3 曼哈顿", expected: true},
		{name: "katakana", text: "マンハッタン", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsCJK(tt.text))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "english", text: "Brooklyn", expected: "en"},
		{name: "chinese", text: "布鲁克林", expected: "zh"},
		{name: "japanese kana", text: "ブルックリン", expected: "ja"},
		{name: "japanese mixed with kanji", text: "東京のマンション", expected: "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.text))
		})
	}
}
