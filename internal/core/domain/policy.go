package domain

// linearWorkflow is the forward progression a courier drives a parcel through.
// Returned branches off any non-terminal point; cancellation is a manager
// decision and never appears in the courier's choices.
var linearWorkflow = []Status{
	StatusCreated,
	StatusCollected,
	StatusInStock,
	StatusInTransit,
	StatusDelivered,
}

// AllowedNextStatuses returns the statuses a role may set on a parcel that is
// currently in current. assignedToActor reports whether the parcel is assigned
// to the acting courier; it is ignored for other roles.
//
// The result is never empty: roles without permission get {current}, which the
// UI renders as a read-only state. This duplicates the server-side check for
// defense in depth; the server remains authoritative.
func AllowedNextStatuses(role Role, current Status, assignedToActor bool) []Status {
	if role == RoleManager {
		out := make([]Status, len(AllStatuses))
		copy(out, AllStatuses)
		return out
	}

	if role != RoleCourier || !assignedToActor || !current.Valid() || current.Terminal() {
		return []Status{current}
	}

	// Remaining tail of the linear workflow, current inclusive, plus the
	// returned branch exactly once.
	start := 0
	for i, s := range linearWorkflow {
		if s == current {
			start = i
			break
		}
	}
	out := make([]Status, 0, len(linearWorkflow)-start+1)
	out = append(out, linearWorkflow[start:]...)
	return append(out, StatusReturned)
}

// StatusAllowed reports whether role may move a parcel from current to next.
func StatusAllowed(role Role, current, next Status, assignedToActor bool) bool {
	for _, s := range AllowedNextStatuses(role, current, assignedToActor) {
		if s == next {
			return true
		}
	}
	return false
}

// CanUpdateStatus is the ownership gate for the status-change action.
// Managers always pass; couriers pass only for parcels assigned to them;
// clients and recipients are read-only. The server enforces the same rule,
// this one only decides whether the action is offered at all.
func CanUpdateStatus(role Role, actorCourierID, parcelCourierID string) bool {
	switch role {
	case RoleManager:
		return true
	case RoleCourier:
		return actorCourierID != "" && actorCourierID == parcelCourierID
	default:
		return false
	}
}
