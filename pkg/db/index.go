package db

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var (
	factoryMu sync.RWMutex
	factory   = map[string]func(dsn string) gorm.Dialector{
		"sqlite": func(dsn string) gorm.Dialector { return sqlite.Open(dsn) },
	}
)

// Register makes another database type available to Open.
func Register(dbType string, dialector func(dsn string) gorm.Dialector) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factory[dbType] = dialector
}

// Open connects to dsn with the dialector registered for dbType.
func Open(dbType, dsn string, conf *gorm.Config) (*gorm.DB, error) {
	factoryMu.RLock()
	dialector, ok := factory[dbType]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("db type %q not registered", dbType)
	}
	if conf == nil {
		conf = &gorm.Config{}
	}
	return gorm.Open(dialector(dsn), conf)
}
