package data

// Cross-chain execution kinds recorded by coordinator observers.
const (
	ExecutionInitiated = "initiated"
	ExecutionCompleted = "completed"
)
