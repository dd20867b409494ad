// Package translation resolves non-English search input to English and caches translations.
package translation

import "unicode"

// ContainsCJK reports whether text has any Han, Hiragana or Katakana character.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

// DetectLanguage guesses the language code of text: "ja" when kana is present,
// "zh" for other CJK text and "en" otherwise.
func DetectLanguage(text string) string {
	hasHan := false
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return "ja"
		}
		if unicode.Is(unicode.Han, r) {
			hasHan = true
		}
	}
	if hasHan {
		return "zh"
	}
	return "en"
}
