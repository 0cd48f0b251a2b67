package domain

// WorkerPatch is one intended write against the workers collection. The
// lifecycle planner emits at most one patch per worker id, so apply order
// cannot leave a worker's availability contradicting the final assignment.
type WorkerPatch struct {
	WorkerID               string
	IsAvailable            bool
	Status                 WorkerStatus
	IncrementCompletedJobs bool
}

// TransferWriteBatch is the full set of writes a lifecycle transition
// intends: the transfer column patch, the worker reconciliation patches and
// the optional status-change notification. Repositories apply the batch in
// a single transaction.
type TransferWriteBatch struct {
	TransferID    string
	Patch         map[string]interface{}
	WorkerPatches []WorkerPatch
	Notification  *Notification
	NewStatus     TransferStatus
	StatusChanged bool
}
