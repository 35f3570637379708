package models

// MaxRows caps how many facts a single read returns.
const MaxRows = 1000

// Query describes a fact listing: an optional category filter, a sort
// column with direction, and a row limit.
type Query struct {
	Category  string
	OrderBy   VoteColumn
	Ascending bool
	Limit     int
}

// DefaultQuery returns the listing used by the board: the given category
// (or every category for "all" and ""), most interesting first, capped at
// MaxRows.
func DefaultQuery(category string) Query {
	return Query{
		Category: category,
		OrderBy:  VoteInteresting,
		Limit:    MaxRows,
	}.Normalize()
}

// Normalize drops the "all" filter, defaults the sort column and clamps the
// limit to 1..MaxRows.
func (q Query) Normalize() Query {
	if q.Category == CategoryAll {
		q.Category = ""
	}
	if !q.OrderBy.Valid() {
		q.OrderBy = VoteInteresting
	}
	if q.Limit <= 0 || q.Limit > MaxRows {
		q.Limit = MaxRows
	}
	return q
}

// Filtered reports whether the query restricts results to one category.
func (q Query) Filtered() bool {
	return q.Category != "" && q.Category != CategoryAll
}
