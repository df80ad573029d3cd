// Package keyspace derives storage keys for users and their documents.
//
// Keys are built from client-supplied identifiers joined with Separator.
// Every identifier must pass IsValidKeyField before it is embedded in a key,
// otherwise one user could address another user's namespace.
package keyspace

import "strings"

// Separator joins the segments of a storage key.
const Separator = ":"

const (
	userPrefix     = "user"
	keySuffix      = "key"
	documentMarker = "document"
)

// IsValidKeyField reports whether s may be embedded in a storage key.
func IsValidKeyField(s string) bool {
	return s != "" && !strings.Contains(s, Separator)
}

// UserKey returns the key holding the credential of the given user.
func UserKey(name string) string {
	return userPrefix + Separator + name + Separator + keySuffix
}

// DocumentKey returns the key holding the progress of document for the given user.
func DocumentKey(name, document string) string {
	return userPrefix + Separator + name + Separator + documentMarker + Separator + document
}
