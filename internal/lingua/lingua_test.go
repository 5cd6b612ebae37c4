package lingua

import "testing"

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Script
	}{
		{"english", "The quick brown fox", ScriptLatin},
		{"korean", "안녕하세요 반갑습니다", ScriptHangul},
		{"mixed mostly korean", "오늘 meeting 있어요", ScriptHangul},
		{"empty", "", ScriptLatin},
		{"punctuation only", "?! ...", ScriptLatin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectScript(tt.text); got != tt.want {
				t.Errorf("DetectScript(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExactMatcher(t *testing.T) {
	m := ExactMatcher()
	if got := m.Ratio("hello", "hello"); got != 100 {
		t.Errorf("Ratio(identical) = %v, want 100", got)
	}
	if got := m.Ratio("hello", "hullo"); got != 0 {
		t.Errorf("Ratio(different) = %v, want 0", got)
	}
}

func TestDefaultMatcherBounds(t *testing.T) {
	m := DefaultMatcher()
	if got := m.Ratio("hello world", "hello world"); got != 100 {
		t.Errorf("Ratio(identical) = %v, want 100", got)
	}
	if got := m.Ratio("abc", "xyz"); got != 0 {
		t.Errorf("Ratio(disjoint) = %v, want 0", got)
	}
	mid := m.Ratio("hello world", "hello there")
	if mid <= 0 || mid >= 100 {
		t.Errorf("Ratio(partial) = %v, want strictly between 0 and 100", mid)
	}
}

func TestDefaultSpeller(t *testing.T) {
	s := DefaultSpeller()
	if got, ok := s.Spell("5"); !ok || got == "" {
		t.Fatalf("Spell(5) = %q, %v; want spelled word", got, ok)
	}
	if _, ok := s.Spell("abc"); ok {
		t.Error("Spell(abc) reported ok for a non-number")
	}
	if _, ok := NoSpeller().Spell("5"); ok {
		t.Error("NoSpeller().Spell(5) reported ok")
	}
}
