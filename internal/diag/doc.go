// Package diag defines diagnostics produced while checking Python source:
// the stable rule codes, severities, and the Bag container the driver merges
// per-file results into. Rule codes and their message text are a public
// contract consumed by editor integrations and suppression tooling; they
// must not change between releases.
package diag
