// Package client contains the client-side building blocks that talk to the
// outside world: the storefront REST backend and the local database.
//
// # Overview
//
//  1. A transport-agnostic API contract (the Client interface) covering the
//     catalog, admin CRUD and the demo login.
//  2. HTTPClient, the implementation over netx.Requester. It maps transport
//     and HTTP failures to the sentinel errors below while keeping the
//     underlying *netx.RequestError reachable through errors.As.
//  3. InitDatabase and RunMigrations, which open the local SQLite file and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match errors.Is against ErrUnavailable (transport failure),
// ErrUnauthorized (401/403) and ErrNotFound (404). Nothing is retried.
//
// Admin calls carry the caller's identifier in the x-user-id header. The
// backend trusts it as is; there is no token.
package client
