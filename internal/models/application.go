package models

// Application links one candidate to one opportunity. The composite
// unique index guarantees at most one row per pair.
type Application struct {
	BaseModel
	CandidateID   string `gorm:"type:uuid;not null;uniqueIndex:idx_candidate_opportunity" json:"candidateId"`
	OpportunityID string `gorm:"type:uuid;not null;uniqueIndex:idx_candidate_opportunity" json:"opportunityId"`

	Candidate   *User        `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Opportunity *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`

	Status  ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message string            `json:"message,omitempty"`
	Note    string            `json:"note,omitempty"`
}
