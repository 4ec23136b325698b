// Package store defines the persistence boundary for the two process-wide
// records the application keeps: the certificate history and the cumulative
// list of already-served question texts. Both are read wholesale at startup
// and written wholesale on every mutation; the service layer is the only
// writer. Implementations live in the sqlite, redis and memory subpackages.
package store
