// Package memory implements the repository interfaces on top of mutex-guarded
// maps. It mirrors the ordering and error contracts of the Postgres and Redis
// implementations so use cases and handlers can be exercised without servers.
package memory
