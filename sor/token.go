package sor

import (
	"regexp"
	"strings"

	"soread/lib/rtype"
)

// Field is the classification of one bracket-delimited token body: the rank
// promoted against the column's current schema rank, and the normalized
// value. Missing fields carry the empty value; a quoted empty string
// (`<"">`) keeps its quotes and is therefore not missing.
type Field struct {
	Rank  rtype.Rank
	Value string
}

// Missing reports whether the field holds the missing representation.
func (f Field) Missing() bool { return f.Value == "" }

var (
	reToken    = regexp.MustCompile(`<([A-Za-z0-9 \t._,+"-]*)>`)
	reBool     = regexp.MustCompile(`^[01][ \t]*$`)
	reInt      = regexp.MustCompile(`^[+-]?[0-9]+[ \t]*$`)
	reFloat    = regexp.MustCompile(`^[+-]?[0-9.+-]+[ \t]*$`)
	reQuoted   = regexp.MustCompile(`^"[A-Za-z0-9 \t._,+-]*"$`)
	reUnquoted = regexp.MustCompile(`^[A-Za-z0-9 \t._,+-]*$`)
)

// classify runs the ordered rule cascade over one token body. Rule order is
// load-bearing: the first match decides the rank. cur is the rank the schema
// currently holds for this column (the zero rank when the column is new);
// every branch returns the rank promoted against cur, so the same pass
// serves schema building and schema checking.
//
// The float pattern is deliberately loose (multiple dots, embedded signs);
// so is the unquoted string pattern. Tightening either would change which
// rule wins for bodies like "1.2.3".
func classify(body string, cur rtype.Rank) Field {
	switch {
	case body == "":
		return Field{Rank: rtype.Promote(cur, rtype.Bool)}
	case reBool.MatchString(body):
		return Field{Rank: rtype.Promote(cur, rtype.Bool), Value: strings.TrimRight(body, " \t")}
	case reInt.MatchString(body):
		return Field{Rank: rtype.Promote(cur, rtype.Integer), Value: strings.TrimRight(body, " \t")}
	case reFloat.MatchString(body):
		return Field{Rank: rtype.Promote(cur, rtype.Float), Value: strings.TrimRight(body, " \t")}
	case reQuoted.MatchString(body):
		return Field{Rank: rtype.Promote(cur, rtype.String), Value: body}
	case reUnquoted.MatchString(body):
		return Field{Rank: rtype.Promote(cur, rtype.String), Value: `"` + body + `"`}
	default:
		// unclassifiable, e.g. a quote away from the ends of the body
		return Field{Rank: rtype.Promote(cur, rtype.Bool)}
	}
}

// tokenize splits one line into its bracket-delimited fields, in source
// order, classifying each against the schema rank at its column position.
// The schema may be nil or shorter than the row; new columns classify
// against the zero rank.
func tokenize(line string, schema []rtype.Rank) []Field {
	matches := reToken.FindAllStringSubmatch(line, -1)
	fields := make([]Field, 0, len(matches))
	for i, m := range matches {
		var cur rtype.Rank
		if i < len(schema) {
			cur = schema[i]
		}
		fields = append(fields, classify(m[1], cur))
	}
	return fields
}
