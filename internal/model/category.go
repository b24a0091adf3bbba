package model

import "time"

type Category struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// CategoryPatch holds the caller supplied subset of category fields. Nil fields are left untouched.
type CategoryPatch struct {
	Name     *string
	IsActive *bool
}

// Apply merges the non-nil fields of p into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}
