package migrate

import (
	"database/sql"

	"relief-api/internal/logger"
)

// 背景：首次运行自动创建救助点表与索引
// 约束：使用 IF NOT EXISTS，可重复执行；不做破坏性变更
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS relief_centers (
            id VARCHAR(64) PRIMARY KEY,
            name TEXT NOT NULL,
            type VARCHAR(20) NOT NULL,
            latitude DOUBLE PRECISION NOT NULL,
            longitude DOUBLE PRECISION NOT NULL,
            address TEXT NOT NULL,
            phone TEXT,
            hours TEXT,
            last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_relief_centers_type ON relief_centers(type)`,
		`DO $$ BEGIN
            ALTER TABLE relief_centers ADD CONSTRAINT relief_centers_type_check
                CHECK (type IN ('shelter','food','medical','water'));
        EXCEPTION WHEN duplicate_object THEN NULL;
        END $$`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
