package domain

import "strings"

// Category is a flat tag attached to events
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`

	Events []Event `gorm:"foreignKey:CategoryID" json:"events,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// NormalizeCategoryName trims and lowercases a category name before persistence
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
