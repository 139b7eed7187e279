package common

const (
	// CHAIN name to identify the canonical transaction chain and the state commitment chain
	CHAIN = "chain"
	// ARCHIVE name to identify the archive component (stores raw elements and full headers)
	ARCHIVE = "archive"
	// RPC name to identify the rpc component (implies archive)
	RPC = "rpc"
	// SUBMITTER name to identify the batch submitter component
	SUBMITTER = "submitter"
)
