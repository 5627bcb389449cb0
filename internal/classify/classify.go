// Package classify maps free-form identifiers onto lookup kinds.
package classify

import (
	"fmt"
	"regexp"

	"pkt.systems/sndbq/schema"
)

type pattern struct {
	kind schema.LookupKind
	re   *regexp.Regexp
}

// Patterns are tried in order; the first match wins. A program name such as
// 12345 must not shadow a sheet such as S00012, so every pattern is anchored.
var patterns = []pattern{
	{schema.LookupProgram, regexp.MustCompile(`^\d{5,}(?:[-_][[:alnum:]]+)*$`)},
	{schema.LookupPart, regexp.MustCompile(`^(?:\d{3}|\d{7})[[:alpha:]]-[[:alnum:]]+(?:-[[:alnum:]]+)*$`)},
	{schema.LookupSheet, regexp.MustCompile(`^[SXW]\d{5}(?:[-_][[:alnum:]]+)*$`)},
	{schema.LookupMaterial, regexp.MustCompile(`^(?:9-)?(?:HPS)?50W?(?:[TF][123])?-\d{4}[[:alpha:]]*$`)},
	{schema.LookupMaterial, regexp.MustCompile(`^\d{7}[[:alpha:]]\d{2}-\d{5}[[:alpha:]]*$`)},
}

// Error reports a token that matches no identifier pattern.
type Error struct {
	Token string
}

func (e *Error) Error() string {
	return fmt.Sprintf("No query pattern matched for value `%s`", e.Token)
}

// Classify returns the lookup request for token.
func Classify(token string) (schema.LookupRequest, error) {
	for _, p := range patterns {
		if p.re.MatchString(token) {
			return schema.LookupRequest{Kind: p.kind, Identifier: token}, nil
		}
	}
	return schema.LookupRequest{}, &Error{Token: token}
}
