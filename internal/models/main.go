// Package models defines the core data structures for users and reading progress.
package models

// User is a registered account together with its credential.
type User struct {
	// Name is the login name chosen at registration.
	Name string `json:"name"`
	// Key is the credential, stored verbatim and compared byte for byte.
	Key string `json:"key"`
}

// ProgressState is the reading position of one document for one user.
// A new write replaces the whole record.
type ProgressState struct {
	// Document identifies the document within the user's namespace.
	Document string `json:"document"`
	// Percentage is how far into the document the reader is. Not validated.
	Percentage float64 `json:"percentage"`
	// Progress is an application-defined position marker.
	Progress string `json:"progress"`
	// Device is the human readable name of the reporting device.
	Device string `json:"device"`
	// DeviceID identifies the reporting device. May be empty.
	DeviceID string `json:"device_id"`
	// Timestamp is the server time of the write, in unix seconds.
	Timestamp int64 `json:"timestamp"`
}

// ProgressUpdate is what a client submits; the server adds the timestamp.
type ProgressUpdate struct {
	Document   string
	Percentage float64
	Progress   string
	Device     string
	DeviceID   string
}
