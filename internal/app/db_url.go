package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/football-scout/internal/config"
)

// PostgresURL is the DSN every binary connects with. It tags the session
// with application_name unless the DSN already sets one.
func PostgresURL(cfg config.Config) string {
	name := strings.TrimSpace(cfg.DBApplicationName)
	if name == "" {
		name = cfg.ServiceName
	}
	return withApplicationName(strings.TrimSpace(cfg.DBURL), name)
}

func withApplicationName(dsn, name string) string {
	if dsn == "" || name == "" {
		return dsn
	}
	if u, ok := parseDSNURL(dsn); ok {
		q := u.Query()
		if q.Get("application_name") != "" {
			return dsn
		}
		q.Set("application_name", name)
		u.RawQuery = q.Encode()
		return u.String()
	}
	if _, ok := dsnParam(dsn, "application_name"); ok {
		return dsn
	}
	return dsn + " application_name='" + strings.ReplaceAll(name, "'", `\'`) + "'"
}

// dbNameFromURL reads the database name from either a postgres:// URL or a
// key=value connection string.
func dbNameFromURL(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, ok := parseDSNURL(dsn); ok {
		return strings.Trim(u.Path, "/ ")
	}
	name, _ := dsnParam(dsn, "dbname")
	return name
}

func parseDSNURL(dsn string) (*url.URL, bool) {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return nil, false
	}
	return u, true
}

func dsnParam(dsn, key string) (string, bool) {
	for _, field := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}
