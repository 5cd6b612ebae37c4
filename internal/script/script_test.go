package script

import "testing"

func TestParse(t *testing.T) {
	input := `
- Alice: Hello there.
* Bob: Hi, Alice!
Narrator: They met at noon.

This line has no speaker tag and is skipped entirely
- Alice: How have you been?
`
	lines := Parse(input)
	if len(lines) != 4 {
		t.Fatalf("Parse returned %d lines, want 4", len(lines))
	}

	tests := []struct {
		index   int
		speaker string
		text    string
	}{
		{0, "Alice", "Hello there."},
		{1, "Bob", "Hi, Alice!"},
		{2, "Narrator", "They met at noon."},
		{3, "Alice", "How have you been?"},
	}
	for i, tt := range tests {
		got := lines[i]
		if got.Index != tt.index || got.Speaker != tt.speaker || got.Text != tt.text {
			t.Errorf("line %d = %+v, want {%d %s %s}", i, got, tt.index, tt.speaker, tt.text)
		}
	}
}

func TestParseKorean(t *testing.T) {
	lines := Parse("- 철수: 안녕하세요.\n- 영희: 반갑습니다.")
	if len(lines) != 2 {
		t.Fatalf("Parse returned %d lines, want 2", len(lines))
	}
	if lines[0].Speaker != "철수" || lines[1].Text != "반갑습니다." {
		t.Errorf("unexpected parse result: %+v", lines)
	}
}

func TestUniqueSpeakers(t *testing.T) {
	lines := Parse("- A: one\n- B: two\n- A: three\n- C: four")
	got := UniqueSpeakers(lines)
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("UniqueSpeakers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueSpeakers[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGroupBySpeakerPreservesOrder(t *testing.T) {
	lines := Parse("- A: one\n- B: two\n- A: three")
	groups := GroupBySpeaker(lines)
	if len(groups["A"]) != 2 {
		t.Fatalf("group A has %d lines, want 2", len(groups["A"]))
	}
	if groups["A"][0].Text != "one" || groups["A"][1].Text != "three" {
		t.Errorf("group A order not preserved: %+v", groups["A"])
	}
}
