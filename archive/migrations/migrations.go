package migrations

import (
	_ "embed"

	"github.com/0xPolygon/rollupchain/db"
	"github.com/0xPolygon/rollupchain/db/types"
	treeMigrations "github.com/0xPolygon/rollupchain/tree/migrations"
)

//go:embed archive0001.sql
var mig001 string

func RunMigrations(dbPath string) error {
	migrations := []types.Migration{
		{
			ID:  "archive0001",
			SQL: mig001,
		},
	}
	migrations = append(migrations, treeMigrations.Migrations...)
	return db.RunMigrations(dbPath, migrations)
}
