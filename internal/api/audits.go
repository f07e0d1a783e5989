package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
)

// AuditCreate is the payload for opening a sanitation audit.
type AuditCreate struct {
	BranchID        int                    `json:"branch_id"`
	AuditDate       time.Time              `json:"audit_date"`
	StartTime       time.Time              `json:"start_time"`
	AuditorName     string                 `json:"auditor_name"`
	AccompanistName string                 `json:"accompanist_name,omitempty"`
	GeneralNotes    string                 `json:"general_notes,omitempty"`
	EquipmentIssues string                 `json:"equipment_issues,omitempty"`
	Categories      []domain.AuditCategory `json:"categories"`
}

// AuditUpdate is the payload for closing out or amending an audit.
// Nil fields are left unchanged.
type AuditUpdate struct {
	EndTime         *time.Time          `json:"end_time,omitempty"`
	AccompanistName *string             `json:"accompanist_name,omitempty"`
	GeneralNotes    *string             `json:"general_notes,omitempty"`
	EquipmentIssues *string             `json:"equipment_issues,omitempty"`
	Status          *domain.AuditStatus `json:"status,omitempty"`
}

// ListAudits returns audit summaries, optionally scoped to one branch.
func (c *Client) ListAudits(ctx context.Context, branchID int) ([]domain.SanitationAudit, error) {
	query := url.Values{}
	if branchID > 0 {
		query.Set("branch_id", strconv.Itoa(branchID))
	}
	var audits []domain.SanitationAudit
	if err := c.get(ctx, "/sanitation-audits/", query, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}

// GetAudit returns one audit with its full category checklist.
func (c *Client) GetAudit(ctx context.Context, id int) (*domain.SanitationAudit, error) {
	var audit domain.SanitationAudit
	if err := c.get(ctx, fmt.Sprintf("/sanitation-audits/%d", id), nil, &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}

// CreateAudit opens a new audit with its checklist categories.
func (c *Client) CreateAudit(ctx context.Context, req AuditCreate) (*domain.SanitationAudit, error) {
	var audit domain.SanitationAudit
	if err := c.post(ctx, "/sanitation-audits/", req, &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}

// UpdateAudit amends an audit, typically to complete it.
func (c *Client) UpdateAudit(ctx context.Context, id int, req AuditUpdate) (*domain.SanitationAudit, error) {
	var audit domain.SanitationAudit
	if err := c.put(ctx, fmt.Sprintf("/sanitation-audits/%d", id), req, &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}

// GenerateAuditSummary asks the backend to produce the deficiencies
// summary for a completed audit.
func (c *Client) GenerateAuditSummary(ctx context.Context, id int) (*domain.AuditInsights, error) {
	var insights domain.AuditInsights
	path := fmt.Sprintf("/sanitation-audits/%d/generate-summary", id)
	if err := c.post(ctx, path, nil, &insights); err != nil {
		return nil, err
	}
	return &insights, nil
}
