// Package readstore fetches the resolver's constraint sources: the table
// catalog, reservation and maintenance rows, and operating hours. SQL does
// time-window narrowing only; which statuses block is domain policy and stays
// out of the queries.
package readstore

import (
	sq "github.com/Masterminds/squirrel"

	"tablebook/internal/infra/db"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db db.DBTX
}

func NewStore(dbtx db.DBTX) *Store {
	return &Store{db: dbtx}
}
