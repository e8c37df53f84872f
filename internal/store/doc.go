// Package store defines the persistence interfaces for the application's
// entities. Implementations live under internal/platform; services and
// handlers depend only on these interfaces so they can be substituted
// with in-memory fakes in tests.
package store
