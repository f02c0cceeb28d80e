package domain

import (
	"time"
)

// Category represents a top-level catalog grouping, e.g. "Dogs" or "Aquatics".
// Type optionally records the pet kind the category targets. ParentID allows a
// shallow hierarchy of categories referencing other categories.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      *string   `json:"type,omitempty"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

// SubCategory is a second-level grouping that always belongs to one category,
// e.g. "Dry Food" under "Dogs".
type SubCategory struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Category *Category `json:"category,omitempty"`
}
