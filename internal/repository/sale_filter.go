package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// SalesPageSize is the fixed page size of the sales listing endpoint.
const SalesPageSize = 10

// SaleFilter carries the parsed query inputs for the sales listing. Nil or
// empty fields mean "no constraint". Malformed inputs are dropped during
// parsing, never stored here.
type SaleFilter struct {
	Search     string
	Regions    []string
	Genders    []string
	Categories []string
	Payments   []string
	Tags       []string
	AgeMin     *int
	AgeMax     *int
	DateStart  *time.Time
	DateEnd    *time.Time
	Sort       string
	Page       int
}

// clause is one typed predicate over the sales table. Each variant renders
// itself into a parameterized SQL fragment starting at the given placeholder
// index. Keeping validation (filter construction) separate from rendering
// keeps the backend translation in one place.
type clause interface {
	render(argIdx int) (cond string, args []interface{})
}

// membershipClause matches rows whose column value is in the list (IN).
type membershipClause struct {
	column string
	values []string
}

func (c membershipClause) render(argIdx int) (string, []interface{}) {
	placeholders := make([]string, len(c.values))
	args := make([]interface{}, len(c.values))
	for i, v := range c.values {
		placeholders[i] = fmt.Sprintf("$%d", argIdx+i)
		args[i] = v
	}
	return fmt.Sprintf("%s IN (%s)", c.column, strings.Join(placeholders, ", ")), args
}

// overlapClause matches rows whose TEXT[] column shares at least one element
// with the list.
type overlapClause struct {
	column string
	values []string
}

func (c overlapClause) render(argIdx int) (string, []interface{}) {
	return fmt.Sprintf("%s && $%d", c.column, argIdx), []interface{}{pq.Array(c.values)}
}

// rangeClause applies inclusive bounds to a column. A nil bound is open.
type rangeClause struct {
	column string
	min    interface{}
	max    interface{}
}

func (c rangeClause) render(argIdx int) (string, []interface{}) {
	var parts []string
	var args []interface{}
	if c.min != nil {
		parts = append(parts, fmt.Sprintf("%s >= $%d", c.column, argIdx))
		args = append(args, c.min)
		argIdx++
	}
	if c.max != nil {
		parts = append(parts, fmt.Sprintf("%s <= $%d", c.column, argIdx))
		args = append(args, c.max)
	}
	return strings.Join(parts, " AND "), args
}

// substringOrClause matches rows where any of the columns contains the term,
// case-insensitive.
type substringOrClause struct {
	columns []string
	term    string
}

func (c substringOrClause) render(argIdx int) (string, []interface{}) {
	pattern := "%" + escapeLike(c.term) + "%"
	parts := make([]string, len(c.columns))
	args := make([]interface{}, len(c.columns))
	for i, col := range c.columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, argIdx+i)
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// escapeLike escapes LIKE wildcards so the search term keeps substring
// semantics.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// clauses builds the typed predicate list from the populated filter fields.
// All clauses are combined with AND by whereClause.
func (f *SaleFilter) clauses() []clause {
	var cs []clause
	if f.Search != "" {
		cs = append(cs, substringOrClause{columns: []string{"customer_name", "phone_number"}, term: f.Search})
	}
	if len(f.Regions) > 0 {
		cs = append(cs, membershipClause{column: "customer_region", values: f.Regions})
	}
	if len(f.Genders) > 0 {
		cs = append(cs, membershipClause{column: "gender", values: f.Genders})
	}
	if len(f.Categories) > 0 {
		cs = append(cs, membershipClause{column: "product_category", values: f.Categories})
	}
	if len(f.Payments) > 0 {
		cs = append(cs, membershipClause{column: "payment_method", values: f.Payments})
	}
	if len(f.Tags) > 0 {
		cs = append(cs, overlapClause{column: "tags", values: f.Tags})
	}
	if f.AgeMin != nil || f.AgeMax != nil {
		rc := rangeClause{column: "age"}
		if f.AgeMin != nil {
			rc.min = *f.AgeMin
		}
		if f.AgeMax != nil {
			rc.max = *f.AgeMax
		}
		cs = append(cs, rc)
	}
	if f.DateStart != nil || f.DateEnd != nil {
		rc := rangeClause{column: "sale_date"}
		if f.DateStart != nil {
			rc.min = *f.DateStart
		}
		if f.DateEnd != nil {
			rc.max = *f.DateEnd
		}
		cs = append(cs, rc)
	}
	return cs
}

// whereClause renders all predicate clauses into a WHERE fragment combined
// with AND. It returns the fragment, the bound arguments, and the next free
// placeholder index.
func (f *SaleFilter) whereClause() (string, []interface{}, int) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1
	for _, c := range f.clauses() {
		cond, clauseArgs := c.render(argIdx)
		where += " AND " + cond
		args = append(args, clauseArgs...)
		argIdx += len(clauseArgs)
	}
	return where, args, argIdx
}

// Recognized sort orders. Every order carries a secondary id tiebreaker so
// pagination is stable across calls.
var sortOrders = map[string]string{
	"date":     "sale_date DESC NULLS LAST, id ASC",
	"quantity": "quantity DESC NULLS LAST, id ASC",
	"customer": "customer_name ASC NULLS LAST, id ASC",
}

// orderBy returns the ORDER BY expression for the filter's sort input.
// Unrecognized or absent values fall back to insertion order.
func (f *SaleFilter) orderBy() string {
	if order, ok := sortOrders[f.Sort]; ok {
		return order
	}
	return "id ASC"
}

// CacheKey returns a short, deterministic key for the filter, used by the
// sales query cache. Field order is fixed so equal filters hash equally.
func (f *SaleFilter) CacheKey() string {
	var b strings.Builder
	b.WriteString("search=" + f.Search)
	b.WriteString("|region=" + strings.Join(f.Regions, ","))
	b.WriteString("|gender=" + strings.Join(f.Genders, ","))
	b.WriteString("|category=" + strings.Join(f.Categories, ","))
	b.WriteString("|payment=" + strings.Join(f.Payments, ","))
	b.WriteString("|tags=" + strings.Join(f.Tags, ","))
	if f.AgeMin != nil {
		b.WriteString("|ageMin=" + strconv.Itoa(*f.AgeMin))
	}
	if f.AgeMax != nil {
		b.WriteString("|ageMax=" + strconv.Itoa(*f.AgeMax))
	}
	if f.DateStart != nil {
		b.WriteString("|dateStart=" + f.DateStart.UTC().Format(time.RFC3339))
	}
	if f.DateEnd != nil {
		b.WriteString("|dateEnd=" + f.DateEnd.UTC().Format(time.RFC3339))
	}
	b.WriteString("|sort=" + f.Sort)
	b.WriteString("|page=" + strconv.Itoa(f.Page))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
