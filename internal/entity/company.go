package entity

import "time"

// CompanySize classifies the organization's scale.
type CompanySize string

const (
	SizeSmall  CompanySize = "Small"
	SizeMedium CompanySize = "Medium"
	SizeLarge  CompanySize = "Large"
)

// CompanyStatus is the company's lifecycle state.
type CompanyStatus string

const (
	CompanyActive    CompanyStatus = "Active"
	CompanyInactive  CompanyStatus = "Inactive"
	CompanySuspended CompanyStatus = "Suspended"
)

// Company is the organizational root of a workspace.
type Company struct {
	Audit
	ID          string
	Code        string
	Name        string
	Description string
	Contact     string
	Industry    string
	Size        CompanySize
	Status      CompanyStatus
}

// NewCompany constructs an Active company. Code uniqueness is enforced by
// the repository layer, not here.
func NewCompany(id, code, name, createdBy string, now time.Time) *Company {
	return &Company{
		Audit:  newAudit(createdBy, now),
		ID:     id,
		Code:   code,
		Name:   name,
		Size:   SizeSmall,
		Status: CompanyActive,
	}
}

// AcceptsNewChildren reports whether this company may receive new Projects
// or Company-scope Resources (§3.1 invariant: only an Active company may).
func (c *Company) AcceptsNewChildren() bool { return c.Status == CompanyActive }

// Suspend transitions the company to Suspended.
func (c *Company) Suspend(now time.Time) {
	c.Status = CompanySuspended
	c.touch(now)
}

// Deactivate soft-deletes the company (terminal until Reactivate).
func (c *Company) Deactivate(now time.Time) error {
	if c.Status == CompanyInactive {
		return &AlreadyDeletedWarning{Kind: "company", Code: c.Code}
	}
	c.Status = CompanyInactive
	c.touch(now)
	return nil
}

// Reactivate clears Inactive/Suspended back to Active.
func (c *Company) Reactivate(now time.Time) {
	c.Status = CompanyActive
	c.touch(now)
}

// Rename changes the company's human-readable name. Code renames go
// through the repository layer since they rewrite file paths and
// references (§3.3).
func (c *Company) Rename(name string, now time.Time) {
	c.Name = name
	c.touch(now)
}
