package models

// Company is keyed by its short handle (e.g. "anderson-arias-morrow").
type Company struct {
	Handle       string  `gorm:"primaryKey;size:25" json:"handle"`
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	NumEmployees *int    `gorm:"check:num_employees >= 0" json:"numEmployees"`
	LogoURL      *string `gorm:"type:text" json:"logoUrl"`

	Jobs []Job `gorm:"foreignKey:CompanyHandle;references:Handle;constraint:OnDelete:CASCADE" json:"-"`
}

// CompanyDetail is the single-company view. Jobs is always present, empty
// when the company has none.
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}

type Job struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"type:text;not null" json:"title"`
	Salary *int   `gorm:"check:salary >= 0" json:"salary"`
	// Equity is a fraction between 0 and 1; nil when the job offers none.
	Equity        *float64 `gorm:"type:numeric;check:equity <= 1.0" json:"equity"`
	CompanyHandle string   `gorm:"size:25;not null;index" json:"companyHandle,omitempty"`
}

type User struct {
	Username  string `gorm:"primaryKey;size:25" json:"username"`
	Password  string `gorm:"type:text;not null" json:"-"`
	FirstName string `gorm:"type:text;not null" json:"firstName"`
	LastName  string `gorm:"type:text;not null" json:"lastName"`
	Email     string `gorm:"type:text;not null" json:"email"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"isAdmin"`

	// IDs of the jobs the user applied to, filled by the single-user lookup.
	Jobs []uint `gorm:"-" json:"jobs,omitempty"`
}

// Application records that a user applied to a job.
type Application struct {
	Username string `gorm:"primaryKey;size:25" json:"username"`
	JobID    uint   `gorm:"primaryKey" json:"jobId"`

	User User `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	Job  Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
