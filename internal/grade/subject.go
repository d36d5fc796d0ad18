package grade

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Subject identifies the course a grade was earned in.
// The zero value is not a valid subject.
type Subject uint8

const (
	Mathematics Subject = iota + 1
	Physics
	Chemistry
	Biology
	Literature
)

var subjectNames = [...]string{
	Mathematics: "Mathematics",
	Physics:     "Physics",
	Chemistry:   "Chemistry",
	Biology:     "Biology",
	Literature:  "Literature",
}

// foldedNames maps case-folded, NFKC-normalised names to subjects.
var foldedNames = func() map[string]Subject {
	m := make(map[string]Subject, len(subjectNames))
	for _, s := range Subjects() {
		m[foldName(s.String())] = s
	}
	return m
}()

// Subjects returns every valid subject in declaration order.
func Subjects() []Subject {
	out := make([]Subject, 0, len(subjectNames)-1)
	for s := Mathematics; int(s) < len(subjectNames); s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a member of the enumeration.
func (s Subject) Valid() bool {
	return s >= Mathematics && int(s) < len(subjectNames)
}

func (s Subject) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Subject(%d)", uint8(s))
	}
	return subjectNames[s]
}

// MarshalText encodes the subject by name.
func (s Subject) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal subject: invalid value %d", uint8(s))
	}
	return []byte(subjectNames[s]), nil
}

// UnmarshalText decodes an exact subject name as written by MarshalText.
func (s *Subject) UnmarshalText(text []byte) error {
	name := string(text)
	for _, candidate := range Subjects() {
		if subjectNames[candidate] == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown subject %q", name)
}

// ParseSubject resolves user input to a subject.
//
// Names match case-insensitively after Unicode NFKC normalisation, so
// "MATHEMATICS" and "mathematics" both resolve. The 1-based menu number
// ("1" for Mathematics through "5" for Literature) is accepted as well.
func ParseSubject(input string) (Subject, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("parse subject: empty input")
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		s := Subject(n)
		if n > 0 && n <= 255 && s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("parse subject: number %d out of range 1-%d", n, len(subjectNames)-1)
	}

	if s, ok := foldedNames[foldName(trimmed)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("parse subject: unknown subject %q", input)
}

func foldName(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}
