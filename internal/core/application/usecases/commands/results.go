package commands

// ScanOutcome is the closed set of results a scan attempt can produce.
// Expected business outcomes (item not found, over the limit) are
// variants here, not errors, so presentation code has to branch on
// each case explicitly.
type ScanOutcome int

const (
	// ScanOutcomeUnknown catches uninitialized results.
	ScanOutcomeUnknown ScanOutcome = iota

	// ScanOK: the increment committed and the quantity is within limits.
	ScanOK

	// ScanItemNotFound: no pick line exists for the (order, item) pair.
	ScanItemNotFound

	// ScanOverLimit: the increment committed but pushed the picked
	// quantity past ordered + tolerance. The persisted quantity is NOT
	// rolled back; physical items were scanned and the ledger reflects
	// reality. The caller decides between warning and hard stop.
	ScanOverLimit

	// ScanStorageError: the storage layer failed; the increment did not
	// commit.
	ScanStorageError
)

// String returns the outcome name for logs and messages.
func (o ScanOutcome) String() string {
	switch o {
	case ScanOK:
		return "OK"
	case ScanItemNotFound:
		return "ItemNotFound"
	case ScanOverLimit:
		return "OverScanLimit"
	case ScanStorageError:
		return "StorageError"
	default:
		return "Unknown"
	}
}

// ScanResult is the typed outcome of one scan increment, carrying the
// authoritative post-increment quantity for the terminal to display.
type ScanResult struct {
	Outcome        ScanOutcome
	OrderID        int64
	ItemCode       string
	QuantityPicked float64
	Limit          float64
	Message        string
}

// Success reports whether the scan was accepted without reservation.
func (r ScanResult) Success() bool {
	return r.Outcome == ScanOK
}

// CompletionOutcome is the closed set of results a completion attempt
// can produce.
type CompletionOutcome int

const (
	// CompletionOutcomeUnknown catches uninitialized results.
	CompletionOutcomeUnknown CompletionOutcome = iota

	// CompletionOK: the order transitioned to Completed and the
	// shipment was materialized.
	CompletionOK

	// CompletionAlreadyCompleted: another station finished the order
	// first. Informational, not an error: the UI should read it as
	// "someone else already finished this".
	CompletionAlreadyCompleted

	// CompletionNotEligible: the order is not in ReadyForCompletion
	// status; nothing was mutated.
	CompletionNotEligible

	// CompletionOrderNotFound: no order exists for the id.
	CompletionOrderNotFound

	// CompletionLocked: another completion is in flight and the lock
	// wait timed out. Expected, recoverable contention: surface as
	// "another user is completing this order, try again shortly".
	CompletionLocked

	// CompletionShipmentUpsertFailed: the shipment header upsert did
	// not produce a resolvable id; the whole transaction was aborted.
	CompletionShipmentUpsertFailed

	// CompletionPackageSyncFailed: package synchronization failed; the
	// whole transaction was aborted.
	CompletionPackageSyncFailed

	// CompletionFailed: any other failure; the whole transaction was
	// rolled back and the order status left untouched.
	CompletionFailed
)

// String returns the outcome name for logs and messages.
func (o CompletionOutcome) String() string {
	switch o {
	case CompletionOK:
		return "OK"
	case CompletionAlreadyCompleted:
		return "AlreadyCompleted"
	case CompletionNotEligible:
		return "NotEligible"
	case CompletionOrderNotFound:
		return "OrderNotFound"
	case CompletionLocked:
		return "CompletionLocked"
	case CompletionShipmentUpsertFailed:
		return "ShipmentUpsertFailed"
	case CompletionPackageSyncFailed:
		return "PackageSyncFailed"
	case CompletionFailed:
		return "CompletionFailed"
	default:
		return "Unknown"
	}
}

// CompletionResult is the typed outcome of one completion attempt.
// OrderNumber carries the canonical order number whenever the order row
// was reached, including the AlreadyCompleted case.
type CompletionResult struct {
	Outcome      CompletionOutcome
	OrderNumber  string
	PackageCount int
	Message      string
}

// Success reports whether this attempt performed the completion.
func (r CompletionResult) Success() bool {
	return r.Outcome == CompletionOK
}
