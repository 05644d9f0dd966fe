package database

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

// Opens (creating if needed) the badger db at baseDir/mapName.
func Open(baseDir, mapName string) (*badger.DB, error) {
	dbDir := filepath.Join(baseDir, mapName)

	opts := badger.DefaultOptions(dbDir)
	opts.ZSTDCompressionLevel = 2
	opts.NumLevelZeroTables = 1
	opts.NumVersionsToKeep = 1
	opts.CompactL0OnClose = true
	opts.Logger = log.WithField("component", "badger")

	return badger.Open(opts)
}

// Opens a db that lives only in memory. Nothing is written to disk.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = log.WithField("component", "badger")

	return badger.Open(opts)
}
