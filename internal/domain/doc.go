// Package domain defines the room, key and message models plus the contracts
// (collaborators, stores, services) the rest of suichat is written against.
//
// Types live in domain/types and interfaces in domain/interfaces; both are
// re-exported here so callers import a single package. Shared sentinel errors
// (ErrNotFound, ErrUnavailable, ErrNotMember) classify collaborator failures.
package domain
