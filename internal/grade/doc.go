// Package grade defines the grade record value type and the closed set of
// subjects a record can belong to.
//
// A Record carries exactly two pieces of state, its Subject and its Score.
// Whether the grade is passing is always derived from the score and is never
// stored or persisted.
//
// Subjects are persisted by name, never by ordinal, so new subjects can be
// appended to the enumeration without invalidating existing files.
package grade
