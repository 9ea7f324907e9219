package models

import "time"

// User holds every identity on the platform: candidates, partners and
// admins. Company, CV and billing columns are only populated for the
// roles that use them.
type User struct {
	BaseModel
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        *string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash string   `json:"-"`
	GithubID     *string  `gorm:"uniqueIndex" json:"githubId,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'candidate'" json:"role"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`

	// Partner company fields
	CompanyName        string `json:"companyName,omitempty"`
	CompanyCoordinates string `json:"companyCoordinates,omitempty"`

	// CV blob; the four fields are always set or cleared together.
	CV           []byte     `gorm:"type:bytea" json:"-"`
	CVFileName   string     `json:"cvFileName,omitempty"`
	CVMimeType   string     `json:"cvMimeType,omitempty"`
	CVUploadedAt *time.Time `json:"cvUploadedAt,omitempty"`

	// Billing cache, mutated only by the subscription service.
	StripeCustomerID    string     `json:"-"`
	SubscriptionID      string     `json:"-"`
	SubscriptionStatus  string     `json:"subscriptionStatus,omitempty"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`

	// Relations
	Opportunities []Opportunity `gorm:"foreignKey:CompanyID" json:"-"`
	Applications  []Application `gorm:"foreignKey:CandidateID" json:"-"`
}

// HasCV reports whether a CV blob is stored for the user.
func (u *User) HasCV() bool {
	return len(u.CV) > 0
}
