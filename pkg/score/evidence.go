package score

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	bracketRegEx = regexp.MustCompile(`[\[\]]`)
	splitRegEx   = regexp.MustCompile(`[ ,]+`)

	// Token grammar: category letter, one or two strength letters, single
	// digit, optional modifier suffix. Anchored so that junk around a code
	// is rejected rather than ignored.
	tokenRegEx = regexp.MustCompile(`^([BP][AVSMP]{1,2}[0-9])(?:_([A-Z]+))?$`)
)

// UnknownCodeError is returned when an input token does not resolve to an
// entry of the evidence-code table.
type UnknownCodeError struct {
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown evidence code: %s", e.Code)
}

// Evidence is a resolved evidence code with an optional strength modifier
// overriding the code's default tier (e.g. PM2 applied as PM2_Supporting).
type Evidence struct {
	Code     Code
	Modifier Strength
}

// Label renders the evidence as entered, e.g. "PVS1" or "PM2_Supporting".
func (e Evidence) Label() string {
	if e.Modifier == "" {
		return e.Code.Name
	}
	return e.Code.Name + "_" + string(e.Modifier)
}

// Points returns the evidence contribution: the modifier tier when present,
// the code's default tier otherwise, negated for benign codes.
func (e Evidence) Points() int {
	if e.Modifier == "" {
		return e.Code.Points()
	}
	p := e.Modifier.weight()
	if e.Code.Category == CategoryBenign {
		return -p
	}
	return p
}

// Parse turns a raw evidence string (e.g. "[PVS1, PS1, PM2_Supporting]")
// into a de-duplicated, display-ordered evidence list. Tokens are matched
// case-insensitively. An empty input yields an empty list.
func Parse(input string) ([]Evidence, error) {
	tokens := normalize(input)

	seen := make(map[string]bool, len(tokens))
	list := make([]Evidence, 0, len(tokens))
	for _, tok := range tokens {
		ev, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		if seen[ev.Label()] {
			continue
		}
		seen[ev.Label()] = true
		list = append(list, ev)
	}

	sort.Slice(list, func(i, j int) bool {
		return less(list[i], list[j])
	})
	return list, nil
}

// normalize strips brackets and splits the input on runs of commas and
// spaces.
func normalize(input string) []string {
	cleaned := strings.TrimSpace(bracketRegEx.ReplaceAllString(input, ""))
	if cleaned == "" {
		return nil
	}
	return splitRegEx.Split(cleaned, -1)
}

func parseToken(token string) (Evidence, error) {
	m := tokenRegEx.FindStringSubmatch(strings.ToUpper(token))
	if m == nil {
		return Evidence{}, &UnknownCodeError{Code: token}
	}

	code, ok := Lookup(m[1])
	if !ok {
		return Evidence{}, &UnknownCodeError{Code: m[1]}
	}

	var modifier Strength
	switch m[2] {
	case "":
	case "STANDALONE":
		modifier = StrengthStandAlone
	case "VERYSTRONG":
		modifier = StrengthVeryStrong
	case "STRONG":
		modifier = StrengthStrong
	case "MODERATE":
		modifier = StrengthModerate
	case "SUPPORTING":
		modifier = StrengthSupporting
	default:
		return Evidence{}, fmt.Errorf("invalid strength modifier %q for evidence code %s", m[2], m[1])
	}

	return Evidence{Code: code, Modifier: modifier}, nil
}

// less orders evidence for display: pathogenic before benign, stronger
// default tiers first, then guideline ordinal, unmodified before modified.
func less(a, b Evidence) bool {
	if a.Code.Category != b.Code.Category {
		return a.Code.Category == CategoryPathogenic
	}
	if a.Code.Strength != b.Code.Strength {
		return a.Code.Strength.rank() < b.Code.Strength.rank()
	}
	if a.Code.Ordinal != b.Code.Ordinal {
		return a.Code.Ordinal < b.Code.Ordinal
	}
	return modifierRank(a.Modifier) < modifierRank(b.Modifier)
}

func modifierRank(s Strength) int {
	if s == "" {
		return -1
	}
	return s.rank()
}
