// Package pg opens a pgx connection pool with startup retries, applies goose
// migrations from an fs.FS and classifies common PostgreSQL errors.
//
//	pool, err := pg.Connect(ctx, cfg, log)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil { ... }
package pg
