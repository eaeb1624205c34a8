package database

import "strings"

// toMigrateDSN rewrites a libpq style URL to the scheme registered by the
// migrate pgx/v5 driver.
func toMigrateDSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
