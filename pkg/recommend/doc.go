// Package recommend implements the recommendation reconciliation engine:
// it mines dependency popularity from similar repositories, parses the
// language model's free-text suggestions into typed records, and resolves
// user decisions into one deduplicated, order-stable install list.
//
// The flow is Miner → Aggregator → Parse → Resolve. External
// collaborators (repository search, manifest fetch, model completion,
// package-index lookup) are consumed through small interfaces so each
// stage tests in isolation.
package recommend
