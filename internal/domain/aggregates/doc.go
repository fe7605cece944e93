// Package aggregates defines the registry write boundaries and their error model.
//
// These contracts intentionally avoid persistence/transport implementation details
// and represent semantic write boundaries where invariants must be enforced atomically.
package aggregates
