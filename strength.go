package sealbox

import "unicode"

// StrengthLevel classifies a password's resistance to guessing.
type StrengthLevel string

const (
	// StrengthWeak means the password fails basic checks.
	StrengthWeak StrengthLevel = "weak"
	// StrengthMedium means the password passes some checks.
	StrengthMedium StrengthLevel = "medium"
	// StrengthStrong means the password passes most checks.
	StrengthStrong StrengthLevel = "strong"
)

// maxStrengthScore is the number of checks a password can pass.
const maxStrengthScore = 6

// Strength is a password strength report. It is advisory: New enforces only
// the MinPasswordLength floor.
type Strength struct {
	Level    StrengthLevel
	Score    int
	MaxScore int

	LengthOK   bool
	HasUpper   bool
	HasLower   bool
	HasDigit   bool
	HasSpecial bool

	Recommendations []string
}

// AnalyzePassword scores a password against length and character-class
// checks and suggests improvements.
func AnalyzePassword(password string) Strength {
	st := Strength{MaxScore: maxStrengthScore}

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			st.HasUpper = true
		case unicode.IsLower(r):
			st.HasLower = true
		case unicode.IsDigit(r):
			st.HasDigit = true
		default:
			st.HasSpecial = true
		}
	}
	st.LengthOK = len(password) >= MinPasswordLength

	if st.LengthOK {
		st.Score++
	}
	if len(password) >= 12 {
		st.Score++
	}
	for _, ok := range []bool{st.HasUpper, st.HasLower, st.HasDigit, st.HasSpecial} {
		if ok {
			st.Score++
		}
	}

	switch {
	case st.Score >= 5:
		st.Level = StrengthStrong
	case st.Score >= 3:
		st.Level = StrengthMedium
	default:
		st.Level = StrengthWeak
	}

	st.Recommendations = recommend(password, st)
	return st
}

func recommend(password string, st Strength) []string {
	var recs []string

	switch {
	case len(password) < MinPasswordLength:
		recs = append(recs, "use at least 8 characters")
	case len(password) < 12:
		recs = append(recs, "consider using 12 or more characters")
	}
	if !st.HasUpper {
		recs = append(recs, "add uppercase letters")
	}
	if !st.HasLower {
		recs = append(recs, "add lowercase letters")
	}
	if !st.HasDigit {
		recs = append(recs, "add digits")
	}
	if !st.HasSpecial {
		recs = append(recs, "add special characters")
	}

	return recs
}
