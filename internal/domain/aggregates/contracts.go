package aggregates

// WriteTxOwnership names who opens and commits the transaction behind a write.
type WriteTxOwnership string

// WriteTxOwnedByAggregate: every write method runs in one transaction the aggregate opens itself.
// Callers never pass a transaction in.
const WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"

// ReadPolicy names which reads an aggregate performs.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped: reads happen only to decide a write, such as a live-reference
	// check or a duplicate lookup.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
	// ReadPolicyTableRepoQueries: the aggregate also serves a listing straight from its table repo.
	ReadPolicyTableRepoQueries ReadPolicy = "table_repo_queries"
)

// Contract is the policy an aggregate declares for its registry writes and reads.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is implemented by every registry aggregate.
type Aggregate interface {
	Contract() Contract
}
