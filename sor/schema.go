package sor

import (
	"bufio"
	"io"

	"soread/lib/rtype"
)

// sampleLines bounds the schema scan. Columns that first appear past the
// bound are never represented in the schema.
const sampleLines = 500

const maxLineBytes = 1 << 20

// inferSchema scans at most sampleLines lines from r, which must be
// positioned at the start of the file — the access window never applies
// here. Each row's promoted ranks are folded into the per-column vector:
// because classify already promotes against the current schema entry,
// overwriting the entry leaves it at the maximum rank observed so far.
func inferSchema(r io.Reader) ([]rtype.Rank, error) {
	var schema []rtype.Rank
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for n := 0; n < sampleLines && sc.Scan(); n++ {
		for i, f := range tokenize(sc.Text(), schema) {
			if i < len(schema) {
				schema[i] = f.Rank
			} else {
				schema = append(schema, f.Rank)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return schema, nil
}
