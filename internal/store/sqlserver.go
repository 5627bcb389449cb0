package store

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"pkt.systems/sndbq/schema"
)

var sqlServerDialect = dialect{
	driver: "sqlserver",
	lookups: map[schema.LookupKind]string{
		schema.LookupProgram:  "EXEC GetProgramStatus @ProgramName=@p1",
		schema.LookupPart:     "EXEC GetPartStatus @ProgramName=@p1",
		schema.LookupSheet:    "EXEC GetSheetStatus @ProgramName=@p1",
		schema.LookupMaterial: "EXEC GetMaterialStatus @ProgramName=@p1",
	},
	logInsert: "INSERT INTO HighSteel.Log(timestamp, app, level, message) VALUES (@p1, @p2, @p3, @p4)",
	dsn:       sqlServerDSN,
}

// sqlServerDSN builds a sqlserver:// URL. Without credentials in Server the
// driver falls back to integrated authentication.
func sqlServerDSN(cfg Config) (string, error) {
	server := strings.TrimSpace(cfg.Server)
	if server == "" {
		return "", fmt.Errorf("database.server is required for sqlserver")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return "", fmt.Errorf("database.database is required for sqlserver")
	}
	u := &url.URL{Scheme: "sqlserver"}
	host, instance, hasInstance := strings.Cut(server, `\`)
	u.Host = host
	if hasInstance {
		u.Path = instance
	}
	q := url.Values{}
	q.Set("database", cfg.Database)
	q.Set("encrypt", "disable")
	q.Set("TrustServerCertificate", "true")
	if cfg.AppName != "" {
		q.Set("app name", cfg.AppName)
	}
	if cfg.Timeout > 0 {
		q.Set("dial timeout", fmt.Sprintf("%d", int(cfg.Timeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
