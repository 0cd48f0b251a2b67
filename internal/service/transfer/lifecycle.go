package transfer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

// statusNotificationTTL is how long a status-change notification stays
// visible to the transfer owner.
const statusNotificationTTL = 7 * 24 * time.Hour

// PlanTransition computes every write a partial update implies: the transfer
// column patch with its transition timestamps, the worker availability
// patches and the owner notification for a status change.
//
// The planner is pure; callers apply the returned batch in one transaction.
// It resolves the assignment/status precedence deterministically:
//   - an explicit workerId in the payload forces status to in_progress and
//     wins over any status-derived worker state, and
//   - a replaced worker is always freed, ordered before the new worker's
//     patch, with at most one patch per worker id.
func PlanTransition(current *domain.Transfer, upd ports.TransferUpdate, now time.Time) *domain.TransferWriteBatch {
	patch := map[string]interface{}{}

	if upd.Origin != nil {
		patch["origin"] = *upd.Origin
	}
	if upd.Destination != nil {
		patch["destination"] = *upd.Destination
	}
	if upd.PickupAt != nil {
		patch["pickup_at"] = *upd.PickupAt
	}
	if upd.DeliveryAt != nil {
		patch["delivery_at"] = *upd.DeliveryAt
	}
	if upd.Total != nil {
		patch["total"] = *upd.Total
	}
	if upd.PaymentStatus != nil {
		patch["payment_status"] = *upd.PaymentStatus
	}

	newStatus := current.Status
	if upd.Status != nil {
		newStatus = *upd.Status
	}

	assigning := upd.WorkerID != nil &&
		(current.WorkerID == nil || *current.WorkerID != *upd.WorkerID)
	if assigning {
		patch["worker_id"] = *upd.WorkerID
		patch["assigned_at"] = now
		newStatus = domain.TransferStatusInProgress
	}

	if upd.Status != nil || assigning {
		patch["status"] = newStatus
		switch newStatus {
		case domain.TransferStatusCompleted:
			patch["completed_at"] = now
		case domain.TransferStatusCancelled:
			patch["cancelled_at"] = now
		case domain.TransferStatusInProgress:
			patch["accepted_at"] = now
		case domain.TransferStatusOnTheWay:
			patch["on_the_way_at"] = now
		}
	}

	batch := &domain.TransferWriteBatch{
		TransferID:    current.ID,
		Patch:         patch,
		NewStatus:     newStatus,
		StatusChanged: newStatus != current.Status,
	}

	batch.WorkerPatches = planWorkerPatches(current, upd, newStatus, assigning)

	if batch.StatusChanged {
		batch.Notification = statusNotification(current, newStatus, now)
	}

	return batch
}

// planWorkerPatches derives the final desired state per worker. The replaced
// worker (if any) is freed first; the transfer's resulting worker gets the
// state the new status implies.
func planWorkerPatches(current *domain.Transfer, upd ports.TransferUpdate, newStatus domain.TransferStatus, assigning bool) []domain.WorkerPatch {
	var patches []domain.WorkerPatch

	if assigning && current.WorkerID != nil {
		patches = append(patches, domain.WorkerPatch{
			WorkerID:    *current.WorkerID,
			IsAvailable: true,
			Status:      domain.WorkerStatusAvailable,
		})
	}

	finalWorker := current.WorkerID
	if assigning {
		finalWorker = upd.WorkerID
	}
	if finalWorker == nil {
		return patches
	}

	switch newStatus {
	case domain.TransferStatusCompleted:
		patches = append(patches, domain.WorkerPatch{
			WorkerID:               *finalWorker,
			IsAvailable:            true,
			Status:                 domain.WorkerStatusAvailable,
			IncrementCompletedJobs: true,
		})
	case domain.TransferStatusCancelled:
		patches = append(patches, domain.WorkerPatch{
			WorkerID:    *finalWorker,
			IsAvailable: true,
			Status:      domain.WorkerStatusAvailable,
		})
	case domain.TransferStatusOnTheWay:
		patches = append(patches, domain.WorkerPatch{
			WorkerID:    *finalWorker,
			IsAvailable: false,
			Status:      domain.WorkerStatusOnTheWay,
		})
	case domain.TransferStatusInProgress:
		patches = append(patches, domain.WorkerPatch{
			WorkerID:    *finalWorker,
			IsAvailable: false,
			Status:      domain.WorkerStatusAssigned,
		})
	}

	return patches
}

func statusNotification(current *domain.Transfer, newStatus domain.TransferStatus, now time.Time) *domain.Notification {
	return &domain.Notification{
		ID:       uuid.NewString(),
		Title:    "Transfer update",
		Message:  fmt.Sprintf("Your transfer from %s to %s is now %s", current.Origin, current.Destination, newStatus),
		Type:     domain.NotificationTypeInfo,
		IsGlobal: false,
		Targets: []domain.NotificationTarget{
			{UserID: current.UserID},
		},
		SendNow:    true,
		ExpiresAt:  now.Add(statusNotificationTTL),
		RedirectTo: "/transfers/" + current.ID,
		CreatedAt:  now,
	}
}
