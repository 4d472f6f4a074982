package domain

// Role is the closed set of user roles
type Role string

const (
	RoleApplicant  Role = "applicant"
	RoleWorker     Role = "worker"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleWorker, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// In reports whether r is in the given role set
func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Job statuses
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// ValidJobStatus reports whether s is a known job status
func ValidJobStatus(s string) bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// Application statuses
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Task progress statuses (five-state machine)
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusApproved   = "approved"
	TaskStatusDenied     = "denied"
)

// ValidTaskProgress reports whether s is a progress value a caller may set
// directly. Approved/denied are reachable only through task review.
func ValidTaskProgress(s string) bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}

// Payment statuses
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}
