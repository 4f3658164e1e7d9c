package service

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.org", true},
		{"a@b.co", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@domain", false},
		{"user@domain.", false},
		{"", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
	}

	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestScorePassword_DocumentedLengthBonus(t *testing.T) {
	// Ten lowercase letters: length bonus 30 plus lowercase bonus 10.
	if got := ScorePassword("aaaaaaaaaa"); got != 40 {
		t.Fatalf("expected score 40 for 10 lowercase chars, got %d", got)
	}
}

func TestScorePassword_MonotoneInLength(t *testing.T) {
	prev := -1
	pw := ""
	for i := 0; i < 30; i++ {
		pw += "a"
		got := ScorePassword(pw)
		if got < prev {
			t.Fatalf("score decreased at length %d: %d < %d", i+1, got, prev)
		}
		prev = got
	}
}

func TestScorePassword_ClampsToRange(t *testing.T) {
	cases := []string{
		"",
		"a",
		"Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!", // everything maxed
	}
	for _, pw := range cases {
		got := ScorePassword(pw)
		if got < 0 || got > 100 {
			t.Errorf("ScorePassword(%q) = %d, out of [0,100]", pw, got)
		}
	}
	if got := ScorePassword("Aa1!Aa1!Aa1!Aa1!"); got != 100 {
		t.Errorf("expected full-house password to score 100, got %d", got)
	}
}

func TestStrengthLabel_Bands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, StrengthWeak},
		{24, StrengthWeak},
		{25, StrengthFair},
		{49, StrengthFair},
		{50, StrengthGood},
		{74, StrengthGood},
		{75, StrengthStrong},
		{100, StrengthStrong},
	}
	for _, tc := range cases {
		if got := StrengthLabel(tc.score); got != tc.want {
			t.Errorf("StrengthLabel(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
