package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"shopdesk/internal/model"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// querier is the subset of pgxpool.Pool and pgx.Tx used for reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conditions accumulates AND-ed SQL predicates with positional arguments.
// An absent filter adds nothing, leaving that dimension unconstrained.
type conditions struct {
	clauses []string
	args    []any
}

// bind appends an argument and returns its placeholder.
func (c *conditions) bind(value any) string {
	c.args = append(c.args, value)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) equal(column string, value any) {
	c.clauses = append(c.clauses, fmt.Sprintf("%s = %s", column, c.bind(value)))
}

// containsAny matches a case-insensitive substring against any of the
// columns. All columns share a single placeholder.
func (c *conditions) containsAny(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}

	placeholder := c.bind("%" + escapeLike(term) + "%")
	alternatives := make([]string, len(columns))
	for i, column := range columns {
		alternatives[i] = fmt.Sprintf("%s ILIKE %s", column, placeholder)
	}
	c.clauses = append(c.clauses, "("+strings.Join(alternatives, " OR ")+")")
}

// addRange adds an inclusive range predicate. With both bounds it emits
// BETWEEN; with one bound it degrades to a one-sided comparison.
func addRange[T any](c *conditions, column string, lo, hi *T) {
	switch {
	case lo != nil && hi != nil:
		c.clauses = append(c.clauses, fmt.Sprintf("%s BETWEEN %s AND %s", column, c.bind(*lo), c.bind(*hi)))
	case lo != nil:
		c.clauses = append(c.clauses, fmt.Sprintf("%s >= %s", column, c.bind(*lo)))
	case hi != nil:
		c.clauses = append(c.clauses, fmt.Sprintf("%s <= %s", column, c.bind(*hi)))
	}
}

// where renders the WHERE clause, or an empty string when unconstrained.
func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page renders LIMIT/OFFSET for the window and returns the argument list
// to use with it. The receiver's own arguments are left untouched so they
// can still be used for the matching count query.
func (c *conditions) page(w model.Window) (string, []any) {
	args := append(slices.Clone(c.args), w.Limit, w.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// orderBy renders an ORDER BY clause. Ties are broken by id so that pages
// do not overlap.
func orderBy(column string, order model.SortOrder) string {
	direction := "ASC"
	if order == model.SortDesc {
		direction = "DESC"
	}
	if column == "id" {
		return " ORDER BY id " + direction
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, direction)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// paginate runs the page query and the count query concurrently. They are
// separate round-trips, so a write landing between them can make the total
// disagree with the page.
func paginate[T any](
	ctx context.Context,
	db querier,
	pageQuery string, pageArgs []any,
	countQuery string, countArgs []any,
	scan func(pgx.Rows) ([]T, error),
) ([]T, int, error) {
	var (
		items []T
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := db.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("page query: %w", err)
		}
		defer rows.Close()

		items, err = scan(rows)
		return err
	})
	g.Go(func() error {
		if err := db.QueryRow(gctx, countQuery, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count query: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scanOne and checks the iteration error.
// It returns an empty, non-nil slice when there are no rows.
func collect[T any](rows pgx.Rows, scanOne func(scanner) (T, error)) ([]T, error) {
	out := make([]T, 0)
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
