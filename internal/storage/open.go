package storage

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend         string
	Dir             string // file
	SQLitePath      string // sqlite
	MongoURI        string // mongo
	MongoDatabase   string
	MongoCollection string
}

// Open builds the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFile(opts.Dir)
	case BackendSQLite:
		return NewSQLite(opts.SQLitePath)
	case BackendMongo:
		return ConnectMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
