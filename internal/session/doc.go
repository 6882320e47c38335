// Package session holds the single locally registered user.
//
// At most one user record is stored, under the "user" key of a durable
// key-value store. The record is read once when the Store is opened and
// is rewritten whole on every change. Passwords are required on input
// but never stored or compared: this is a local profile, not an
// authentication boundary.
package session
