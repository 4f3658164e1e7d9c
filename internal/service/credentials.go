package service

import "regexp"

// emailRe accepts the usual local@domain.tld shape: non-empty local part,
// a single "@", and a domain containing at least one dot.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether s looks like a deliverable address.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Strength bands and their lower bounds on the 0..100 scale.
const (
	StrengthWeak   = "Weak"
	StrengthFair   = "Fair"
	StrengthGood   = "Good"
	StrengthStrong = "Strong"

	fairThreshold   = 25
	goodThreshold   = 50
	strongThreshold = 75
)

// Length milestones and character-class bonuses. The length component is
// monotone in len(password), so a longer password never scores lower.
const (
	lenBonus6  = 10
	lenBonus8  = 20
	lenBonus10 = 30
	lenBonus14 = 40

	lowerBonus  = 10
	upperBonus  = 15
	digitBonus  = 15
	symbolBonus = 20
)

// ScorePassword rates a password on a 0..100 scale from its length and the
// character classes it uses.
func ScorePassword(password string) int {
	score := lengthScore(len(password))

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if hasLower {
		score += lowerBonus
	}
	if hasUpper {
		score += upperBonus
	}
	if hasDigit {
		score += digitBonus
	}
	if hasSymbol {
		score += symbolBonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func lengthScore(n int) int {
	switch {
	case n >= 14:
		return lenBonus14
	case n >= 10:
		return lenBonus10
	case n >= 8:
		return lenBonus8
	case n >= 6:
		return lenBonus6
	default:
		return 0
	}
}

// StrengthLabel maps a score to its display band.
func StrengthLabel(score int) string {
	switch {
	case score < fairThreshold:
		return StrengthWeak
	case score < goodThreshold:
		return StrengthFair
	case score < strongThreshold:
		return StrengthGood
	default:
		return StrengthStrong
	}
}
