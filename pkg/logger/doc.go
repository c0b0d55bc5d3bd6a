// Package logger provides slog attribute helpers with consistent keys for
// the identifiers that recur across access-control logging: users, roles,
// sessions, and errors. Helpers return an empty Attr for nil input so call
// sites never need nil checks.
package logger
