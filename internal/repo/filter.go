package repo

import (
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/bloodx-backend/internal/domain"
)

// Filter composes WHERE predicates from optional inputs. Blank values add no
// clause, so handlers can pass query parameters straight through. Column
// names are supplied by repository code, never by clients.
//
//	f := repo.NewFilter().
//	    Eq("requester_email", email).
//	    Eq("donation_status", status)
//	q := f.Apply(db.Model(&domain.DonationRequest{}))
type Filter struct {
	clauses []predicate
}

type predicate struct {
	expr string
	args []any
}

// NewFilter returns an empty filter that matches every row.
func NewFilter() *Filter { return &Filter{} }

// Eq adds "col = v" when v is not blank.
func (f *Filter) Eq(col, v string) *Filter {
	v = strings.TrimSpace(v)
	if v == "" {
		return f
	}
	f.clauses = append(f.clauses, predicate{expr: col + " = ?", args: []any{v}})
	return f
}

// ContainsFold adds a case-insensitive substring match on col when v is not
// blank. col must hold values produced by domain.FoldKey; v is folded the
// same way here, so matching never depends on the database's LOWER(), which
// is ASCII-only in SQLite. LIKE wildcards in v are matched literally.
func (f *Filter) ContainsFold(col, v string) *Filter {
	v = domain.FoldKey(v)
	if v == "" {
		return f
	}
	f.clauses = append(f.clauses, predicate{
		expr: col + " LIKE ? ESCAPE '\\'",
		args: []any{"%" + escapeLike(v) + "%"},
	})
	return f
}

// Len returns the number of predicates.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.clauses)
}

// Apply ANDs every predicate onto q in insertion order. A nil filter is a no-op.
func (f *Filter) Apply(q *gorm.DB) *gorm.DB {
	if f == nil {
		return q
	}
	for _, p := range f.clauses {
		q = q.Where(p.expr, p.args...)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// window applies skip/limit. limit <= 0 means "no limit".
func window(q *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		q = q.Offset(skip)
		if limit <= 0 {
			// SQLite rejects OFFSET without LIMIT.
			limit = math.MaxInt32
		}
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
