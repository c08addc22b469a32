package domain

import "github.com/google/uuid"

// CertificateTemplate is a teacher-owned free-form HTML certificate layout
type CertificateTemplate struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_certificate_templates_user_id" json:"userId"`
	HTMLContent string    `gorm:"type:text;not null" json:"htmlContent"`
	Width       float64   `gorm:"not null;default:1200" json:"width"`
	Height      float64   `gorm:"not null;default:800" json:"height"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for CertificateTemplate
func (CertificateTemplate) TableName() string {
	return "certificate_templates"
}
