package database

import (
	"fmt"
	"strconv"
	"strings"

	"readrise/internal/platform/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect captures the few SQL differences between the supported drivers.
type Dialect struct {
	Name string
}

var (
	SQLite   = Dialect{Name: DriverSQLite}
	Postgres = Dialect{Name: DriverPostgres}
)

func DialectFor(driver string) (Dialect, error) {
	switch config.NormalizeDriver(driver) {
	case DriverSQLite:
		return SQLite, nil
	case DriverPostgres:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites ? placeholders into the driver's native form.
func (d Dialect) Rebind(query string) string {
	if d.Name != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DayOfMillis renders the UTC YYYY-MM-DD of a unix-millisecond column.
func (d Dialect) DayOfMillis(column string) string {
	if d.Name == DriverPostgres {
		return fmt.Sprintf("to_char(to_timestamp(%s / 1000) AT TIME ZONE 'UTC', 'YYYY-MM-DD')", column)
	}
	return fmt.Sprintf("date(%s / 1000, 'unixepoch')", column)
}
