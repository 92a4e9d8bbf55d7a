package sor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/mo"

	"soread/lib/rtype"
)

// Window is the byte range the row locator may read. Start 0 with an absent
// Length reads the whole file. The schema scan ignores the window.
type Window struct {
	Start  int64
	Length mo.Option[int64]
}

// Reader interprets one SoR file: a per-column rank vector inferred once at
// construction from a bounded leading sample, plus random access to field
// values inside the configured window. The schema never changes after Open;
// rows are re-read and re-tokenized on every query.
//
// A Reader is not safe for concurrent use: every query repositions the
// shared file handle. Callers must serialize access externally.
type Reader struct {
	f      *os.File
	window Window
	schema []rtype.Rank
}

// Open opens the file, infers the schema from its leading sample and holds
// the handle for the lifetime of the Reader.
func Open(path string, w Window) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	schema, err := inferSchema(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("infer schema: %w", err)
	}
	return &Reader{f: f, window: w, schema: schema}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Columns returns the number of columns in the inferred schema.
func (r *Reader) Columns() int {
	return len(r.schema)
}

// Schema returns a copy of the inferred per-column rank vector.
func (r *Reader) Schema() []rtype.Rank {
	out := make([]rtype.Rank, len(r.schema))
	copy(out, r.schema)
	return out
}

// ColumnType returns the inferred rank of the given column.
func (r *Reader) ColumnType(col int) (rtype.Rank, error) {
	if col < 0 || col >= len(r.schema) {
		return 0, fmt.Errorf("column %d: %w", col, ErrUnknownColumn)
	}
	return r.schema[col], nil
}

// Value returns the stored string for (col, row) inside the window, where
// row is 0-indexed from the window start. The empty string means the field
// is missing: absent from the row, unclassifiable, or looser than the
// column's fixed rank. Missing is not an error; ErrUnknownColumn and
// ErrOffsetOutOfRange are.
func (r *Reader) Value(col, row int) (string, error) {
	if row < 0 {
		return "", fmt.Errorf("row %d: %w", row, ErrOffsetOutOfRange)
	}
	line, ok, err := r.seekRow(row)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("row %d: %w", row, ErrOffsetOutOfRange)
	}
	if col < 0 || col >= len(r.schema) {
		return "", fmt.Errorf("column %d: %w", col, ErrUnknownColumn)
	}
	fields := tokenize(line, r.schema)
	if col >= len(fields) {
		// trailing columns are implicitly missing
		return "", nil
	}
	f := fields[col]
	if f.Rank > r.schema[col] {
		// looser than the column's fixed rank: treated as missing
		return "", nil
	}
	return f.Value, nil
}

// IsMissing reports whether Value(col, row) is the missing representation.
func (r *Reader) IsMissing(col, row int) (bool, error) {
	v, err := r.Value(col, row)
	if err != nil {
		return false, err
	}
	return v == "", nil
}

// seekRow repositions the handle to the window start and scans forward to
// the target row, counting every byte consumed (line terminators included).
// It returns the raw target line and whether the target was reached within
// the window.
//
// Two boundary rules are intentional and asymmetric: row 0 only counts if
// consumed bytes are still strictly below the bound once its line is read,
// while later rows count until consumed bytes strictly exceed the bound.
func (r *Reader) seekRow(target int) (string, bool, error) {
	if _, err := r.f.Seek(r.window.Start, io.SeekStart); err != nil {
		return "", false, err
	}
	br := bufio.NewReader(r.f)
	var consumed int64
	bounded := r.window.Length.IsPresent()
	var bound int64
	if bounded {
		bound = r.window.Length.MustGet()
	}

	// A nonzero start lands mid-line in general, so the first line read
	// after the seek is assumed partial and discarded unconditionally.
	if r.window.Start != 0 {
		skipped, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", false, err
		}
		consumed += int64(len(skipped))
		if err == io.EOF {
			return "", false, nil
		}
	}

	row := -1
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", false, err
		}
		if len(line) == 0 {
			return "", false, nil
		}
		consumed += int64(len(line))
		if bounded {
			if row == -1 {
				if consumed >= bound {
					return "", false, nil
				}
			} else if consumed > bound {
				return "", false, nil
			}
		}
		row++
		if row == target {
			return strings.TrimSuffix(line, "\n"), true, nil
		}
		if err == io.EOF {
			return "", false, nil
		}
	}
}
