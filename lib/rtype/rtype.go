package rtype

// Rank is the ordinal classification of a field body. Ranks are totally
// ordered from Bool up to String; a column's schema rank is the loosest
// rank observed for it during the sample scan.
type Rank uint8

const (
	Bool Rank = iota
	Integer
	Float
	String
)

// Promote returns the looser of the two ranks.
func Promote(a, b Rank) Rank {
	if a > b {
		return a
	}
	return b
}

func (r Rank) String() string {
	switch r {
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "unknown"
}
