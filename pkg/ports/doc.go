/*
Package ports defines the storage port of the editor.

ProjectStore hides where projects live: a directory tree on disk
(adapters/file), encoded snapshots in memory (adapters/memory) or one hash
per project in Redis (adapters/redis). All of them encode through package
persistence, so a project loaded from any of them looks the same.

DistributedLocker lets stores shared between processes serialise saves.

RunProjectStoreContract is the shared test suite every adapter must pass.
*/
package ports
