package models

import "time"

type CustomerType string
type AccountStatus string
type InstallationStatus string

const (
	CustomerResidential CustomerType = "residential"
	CustomerCorporate   CustomerType = "corporate"
)

const (
	AccountLead      AccountStatus = "lead"
	AccountPending   AccountStatus = "pending"
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountCancelled AccountStatus = "cancelled"
)

const (
	InstallPendingSurvey   InstallationStatus = "pending_survey"
	InstallSurveyCompleted InstallationStatus = "survey_completed"
	InstallSurveyFailed    InstallationStatus = "survey_failed"
	InstallScheduled       InstallationStatus = "scheduled"
	InstallInstalled       InstallationStatus = "installed"
)

// Customer represents an ISP subscriber. account_status and
// installation_status are independent axes: an active customer may still
// carry informational installation fields.
type Customer struct {
	ID                 int                `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	Phone              string             `db:"phone" json:"phone"`
	Type               CustomerType       `db:"type" json:"type"`
	AccountStatus      AccountStatus      `db:"account_status" json:"accountStatus"`
	InstallationStatus InstallationStatus `db:"installation_status" json:"installationStatus"`
	PlanID             *int               `db:"plan_id" json:"planId,omitempty"`
	Address            *string            `db:"address" json:"address,omitempty"`
	ODPPort            *string            `db:"odp_port" json:"odpPort,omitempty"`
	Coordinates        *string            `db:"coordinates" json:"coordinates,omitempty"`
	SurveyNotes        *string            `db:"survey_notes" json:"surveyNotes,omitempty"`
	CreatedAt          time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updatedAt"`
}
