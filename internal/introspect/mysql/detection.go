package mysql

import (
	"context"
	"database/sql"
	"strings"
)

// detectFlavor identifies which MySQL-protocol server we're talking to,
// purely for logging; the schema model itself doesn't distinguish flavors.
func detectFlavor(ctx context.Context, db *sql.DB) (flavor, version string, err error) {
	var varName, comment string
	if err := db.QueryRowContext(ctx, "SHOW VARIABLES LIKE 'version_comment'").Scan(&varName, &comment); err != nil {
		return "", "", err
	}

	version = serverVersion(ctx, db)
	comment = strings.ToLower(comment)

	switch {
	case strings.Contains(comment, "mariadb"):
		return "mariadb", version, nil
	case strings.Contains(comment, "tidb"):
		return "tidb", version, nil
	default:
		return "mysql", version, nil
	}
}

func serverVersion(ctx context.Context, db *sql.DB) string {
	var version string
	_ = db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version)
	if idx := strings.Index(version, "-"); idx > 0 {
		version = version[:idx]
	}
	return version
}
