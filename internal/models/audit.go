package models

import "time"

// AuditAction constants represent workflow actions to be logged.
const (
	AuditActionLogin           = "LOGIN"
	AuditActionApprovalCreate  = "APPROVAL_CREATE"
	AuditActionApprovalApprove = "APPROVAL_APPROVE"
	AuditActionApprovalReject  = "APPROVAL_REJECT"
	AuditActionApprovalRevise  = "APPROVAL_REVISE"
	AuditActionFeedbackSubmit  = "FEEDBACK_SUBMIT"
)

// AuditLog records who did what to which resource. Review actions and
// approval-request creation always emit one.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actorId,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
