package models

// Opportunity is a job or internship posting owned by a partner user.
// Public visibility is derived from the owner's subscription status,
// never stored on the row.
type Opportunity struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Location    string `gorm:"not null" json:"location"`
	Salary      int    `json:"salary,omitempty"`
	Type        string `gorm:"not null" json:"type"`
	Field       string `gorm:"index" json:"field,omitempty"`

	CompanyID string `gorm:"type:uuid;not null;index" json:"companyId"`
	Company   *User  `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	Applications []Application `gorm:"foreignKey:OpportunityID" json:"-"`
}
