// Package store provides read access to the intent taxonomy and device
// catalogs. The catalogs are provisioned out-of-band (see
// cmd/tools/taxonomy-seeder) and treated as read-mostly at runtime.
package store

import (
	"database/sql"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
)

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}
