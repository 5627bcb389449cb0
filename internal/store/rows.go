package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingColumn indicates the result set has no such column.
	ErrMissingColumn = errors.New("missing column")
	// ErrNullColumn indicates a required column holds NULL.
	ErrNullColumn = errors.New("null column")
)

// RowReader reads typed values from one result row by column name.
// Required accessors fail on missing or NULL columns; OptionalString
// reports absence instead.
type RowReader interface {
	String(column string) (string, error)
	OptionalString(column string) (string, bool, error)
	Time(column string) (time.Time, error)
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// sqlRow is a RowReader over one database/sql row. Column lookup is
// case-insensitive.
type sqlRow struct {
	index  map[string]int
	values []any
}

func scanRow(rows *sql.Rows) (*sqlRow, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}
	return newSQLRow(cols, values), nil
}

func newSQLRow(cols []string, values []any) *sqlRow {
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[strings.ToLower(col)] = i
	}
	return &sqlRow{index: index, values: values}
}

func (r *sqlRow) value(column string) (any, bool) {
	i, ok := r.index[strings.ToLower(column)]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

func (r *sqlRow) String(column string) (string, error) {
	v, ok := r.value(column)
	if !ok {
		return "", fmt.Errorf("%w %s", ErrMissingColumn, column)
	}
	if v == nil {
		return "", fmt.Errorf("%w %s", ErrNullColumn, column)
	}
	return formatValue(v), nil
}

func (r *sqlRow) OptionalString(column string) (string, bool, error) {
	v, ok := r.value(column)
	if !ok || v == nil {
		return "", false, nil
	}
	return formatValue(v), true, nil
}

func (r *sqlRow) Time(column string) (time.Time, error) {
	v, ok := r.value(column)
	if !ok {
		return time.Time{}, fmt.Errorf("%w %s", ErrMissingColumn, column)
	}
	switch tv := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w %s", ErrNullColumn, column)
	case time.Time:
		return tv, nil
	case string:
		return parseTime(column, tv)
	case []byte:
		return parseTime(column, string(tv))
	default:
		return time.Time{}, fmt.Errorf("column %s: unexpected time value %T", column, v)
	}
}

func parseTime(column, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("column %s: unparseable time %q", column, value)
}

func formatValue(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case []byte:
		return string(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(tv)
	case time.Time:
		return tv.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
