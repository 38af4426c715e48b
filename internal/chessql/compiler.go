package chessql

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/motifs"
)

// CompileError reports a semantic error: an unknown field, motif, or
// operator in an otherwise well-formed query.
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string {
	return "chessql: " + e.Msg
}

// CompiledQuery is a parameterized SQL statement over the game_features
// table plus its ordered bind values. Every literal from the query text
// is bound, never interpolated.
type CompiledQuery struct {
	SelectSQL string
	Params    []any
}

// validColumns is the external field whitelist. Anything else,
// including SQL keywords posing as field names, is rejected.
var validColumns = map[string]bool{
	"white_elo":      true,
	"black_elo":      true,
	"white_username": true,
	"black_username": true,
	"time_class":     true,
	"num_moves":      true,
	"eco":            true,
	"result":         true,
	"platform":       true,
	"game_url":       true,
	"played_at":      true,
	"indexed_at":     true,
}

// stringColumns get case-insensitive equality comparison.
var stringColumns = map[string]bool{
	"white_username": true,
	"black_username": true,
	"time_class":     true,
	"eco":            true,
	"result":         true,
	"platform":       true,
	"game_url":       true,
}

// Compile parses and compiles a ChessQL string in one step.
func Compile(input string) (*CompiledQuery, error) {
	query, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return CompileQuery(query)
}

// CompileQuery lowers a parsed query to parameterized SQL selecting
// matching rows from game_features.
func CompileQuery(q *Query) (*CompiledQuery, error) {
	var whereParams []any
	whereClause, err := compileExpr(q.Expr, &whereParams)
	if err != nil {
		return nil, err
	}

	if q.OrderBy == nil {
		sql := "SELECT g.* FROM game_features g WHERE " + whereClause +
			" ORDER BY g.played_at DESC"
		return &CompiledQuery{SelectSQL: sql, Params: whereParams}, nil
	}

	name, err := motifName(q.OrderBy.Motif)
	if err != nil {
		return nil, err
	}
	direction := "ASC"
	if !q.OrderBy.Ascending {
		direction = "DESC"
	}

	// The count subquery's parameter precedes the WHERE parameters in
	// statement order.
	params := append([]any{name}, whereParams...)
	sql := "SELECT g.* FROM game_features g" +
		" LEFT JOIN (SELECT game_url, COUNT(*) AS c FROM motif_occurrences" +
		" WHERE motif = ? GROUP BY game_url) cnt" +
		" ON g.game_url = cnt.game_url" +
		" WHERE " + whereClause +
		" ORDER BY COALESCE(cnt.c, 0) " + direction
	return &CompiledQuery{SelectSQL: sql, Params: params}, nil
}

func compileExpr(expr Expr, params *[]any) (string, error) {
	switch e := expr.(type) {
	case *And:
		return compileJunction(e.Operands, " AND ", params)
	case *Or:
		return compileJunction(e.Operands, " OR ", params)
	case *Not:
		inner, err := compileExpr(e.Operand, params)
		if err != nil {
			return "", err
		}
		return "(NOT " + inner + ")", nil
	case *Comparison:
		return compileComparison(e, params)
	case *In:
		return compileIn(e, params)
	case *MotifPredicate:
		return compileMotif(e, params)
	case *Sequence:
		return compileSequence(e, params)
	}
	return "", &CompileError{Msg: fmt.Sprintf("unsupported expression %T", expr)}
}

func compileJunction(operands []Expr, sep string, params *[]any) (string, error) {
	parts := make([]string, 0, len(operands))
	for _, op := range operands {
		part, err := compileExpr(op, params)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func compileComparison(cmp *Comparison, params *[]any) (string, error) {
	column, err := resolveColumn(cmp.Field)
	if err != nil {
		return "", err
	}
	switch cmp.Op {
	case "=", "!=", "<", "<=", ">", ">=":
	default:
		return "", &CompileError{Msg: fmt.Sprintf("invalid operator %q", cmp.Op)}
	}
	*params = append(*params, cmp.Value)
	if stringColumns[column] && (cmp.Op == "=" || cmp.Op == "!=") {
		return "LOWER(" + column + ") " + cmp.Op + " LOWER(?)", nil
	}
	return column + " " + cmp.Op + " ?", nil
}

func compileIn(in *In, params *[]any) (string, error) {
	column, err := resolveColumn(in.Field)
	if err != nil {
		return "", err
	}
	*params = append(*params, in.Values...)
	placeholder := "?"
	if stringColumns[column] {
		placeholder = "LOWER(?)"
	}
	placeholders := make([]string, len(in.Values))
	for i := range placeholders {
		placeholders[i] = placeholder
	}
	if stringColumns[column] {
		return "LOWER(" + column + ") IN (" + strings.Join(placeholders, ", ") + ")", nil
	}
	return column + " IN (" + strings.Join(placeholders, ", ") + ")", nil
}

func compileMotif(m *MotifPredicate, params *[]any) (string, error) {
	name, err := motifName(m.Name)
	if err != nil {
		return "", err
	}
	*params = append(*params, name)
	return "EXISTS (SELECT 1 FROM motif_occurrences mo" +
		" WHERE mo.game_url = g.game_url AND mo.motif = ?)", nil
}

// compileSequence joins one (game_url, ply) subquery per motif on
// consecutive plies of the same side (ply + 2 per step), anchored to the
// outer game row.
func compileSequence(seq *Sequence, params *[]any) (string, error) {
	if len(seq.Names) < 2 {
		return "", &CompileError{Msg: "sequence() requires at least 2 motifs"}
	}

	var sb strings.Builder
	sb.WriteString("EXISTS (SELECT 1 FROM (")
	sb.WriteString(plySubquery)
	sb.WriteString(") sq1")
	name, err := motifName(seq.Names[0])
	if err != nil {
		return "", err
	}
	*params = append(*params, name)

	for i := 1; i < len(seq.Names); i++ {
		name, err := motifName(seq.Names[i])
		if err != nil {
			return "", err
		}
		*params = append(*params, name)
		fmt.Fprintf(&sb, " JOIN (%s) sq%d ON sq%d.game_url = sq1.game_url AND sq%d.ply = sq%d.ply + 2",
			plySubquery, i+1, i+1, i+1, i)
	}

	sb.WriteString(" WHERE sq1.game_url = g.game_url)")
	return sb.String(), nil
}

const plySubquery = "SELECT game_url, ply FROM motif_occurrences WHERE motif = ?"

// motifName validates an external motif token and returns its canonical
// lowercase form. The internal attack primitive is not accepted.
func motifName(name string) (string, error) {
	lowered := strings.ToLower(name)
	if _, ok := motifs.FromName(lowered); !ok {
		return "", &CompileError{Msg: fmt.Sprintf("unknown motif %q", name)}
	}
	return lowered, nil
}

// resolveColumn maps a field name or dot alias onto the column
// whitelist.
func resolveColumn(field string) (string, error) {
	if validColumns[field] {
		return field, nil
	}
	underscored := strings.ReplaceAll(field, ".", "_")
	if validColumns[underscored] {
		return underscored, nil
	}
	return "", &CompileError{Msg: fmt.Sprintf("unknown field %q", field)}
}
