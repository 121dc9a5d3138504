// Copyright (c) 2017-2018 The qitmeer developers

package database

import (
	"fmt"
	"sort"
	"sync"
)

// Driver opens databases of one backend type.
type Driver struct {
	// DbType is the name the driver is selected by.
	DbType string

	// Create opens or creates the database at path.
	Create func(path string) (DB, error)
}

var (
	driversMtx sync.RWMutex
	drivers    = make(map[string]*Driver)
)

// RegisterDriver adds a backend. Registering the same type twice is an
// error.
func RegisterDriver(driver Driver) error {
	driversMtx.Lock()
	defer driversMtx.Unlock()
	if _, exists := drivers[driver.DbType]; exists {
		return fmt.Errorf("driver %q is already registered", driver.DbType)
	}
	drivers[driver.DbType] = &driver
	return nil
}

// SupportedDrivers returns the registered backend types, sorted.
func SupportedDrivers() []string {
	driversMtx.RLock()
	defer driversMtx.RUnlock()
	types := make([]string, 0, len(drivers))
	for t := range drivers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Create opens the database of type dbType at path.
func Create(dbType, path string) (DB, error) {
	driversMtx.RLock()
	drv, exists := drivers[dbType]
	driversMtx.RUnlock()
	if !exists {
		return nil, fmt.Errorf("driver %q is not registered", dbType)
	}
	return drv.Create(path)
}
