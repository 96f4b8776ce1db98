// Package dbtx lets gorm repositories run inside a *sql.Tx opened by a
// service, so multi-step writes commit or roll back together.
package dbtx

import (
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a session of db whose statements execute on tx.
// A nil tx returns db unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	session.Statement.ConnPool = tx
	return session
}
