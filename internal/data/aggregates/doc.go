// Package aggregates implements the registry write boundaries.
//
// Each aggregate composes the table repos from internal/data/repos, the reference
// resolver and the lifecycle manager, and owns one transaction per write.
package aggregates
