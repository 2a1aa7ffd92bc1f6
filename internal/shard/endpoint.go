// Package shard binds a process to one data shard: it resolves the shard's
// master and replica endpoints and hands out sessions against them.
package shard

import (
	"fmt"
	"path/filepath"
	"strconv"
)

const (
	DefaultShard = "a"

	RoleMaster  = "master"
	RoleReplica = "replica"

	SchemePostgres = "postgres"
	SchemeSQLite   = "sqlite"
)

// Endpoints is the connection template shared by every shard. Only the
// host segment (<role>-<shard>) varies between shards.
type Endpoints struct {
	Scheme   string
	User     string
	Password string
	Port     int
	Database string
	Params   string
}

func Role(replica bool) string {
	if replica {
		return RoleReplica
	}
	return RoleMaster
}

// Host is the service name the deployment registers for a shard role.
func Host(shardID string, replica bool) string {
	if shardID == "" {
		shardID = DefaultShard
	}
	return Role(replica) + "-" + shardID
}

// Resolve formats the endpoint for shardID. The shard id is not interpreted;
// a bad one only fails once the driver tries to reach the host.
func (e Endpoints) Resolve(shardID string, replica bool) string {
	host := Host(shardID, replica)

	var dsn string
	switch e.Scheme {
	case SchemeSQLite:
		dsn = filepath.Join(e.Database, host+".db")
	default:
		dsn = fmt.Sprintf("%s://%s:%s@%s:%s/%s",
			e.scheme(), e.User, e.Password, host, strconv.Itoa(e.Port), e.Database)
	}

	if e.Params != "" {
		dsn += "?" + e.Params
	}
	return dsn
}

// Driver is the pkg/db driver name for the scheme.
func (e Endpoints) Driver() string {
	if e.Scheme == SchemeSQLite {
		return SchemeSQLite
	}
	return SchemePostgres
}

func (e Endpoints) scheme() string {
	if e.Scheme == "" {
		return SchemePostgres
	}
	return e.Scheme
}
