package model

// Role is the sole axis of authorization.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
	RoleClient  Role = "client"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupport, RoleClient:
		return true
	}
	return false
}

// TicketStatus is the ticket lifecycle state. Any status may follow any
// other; no transition graph is enforced.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
	StatusReopened   TicketStatus = "reopened"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusReopened:
		return true
	}
	return false
}

// TicketPriority is the ticket urgency level.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DepartmentCode identifies a department in the catalog.
type DepartmentCode string

const (
	DeptTechSupport     DepartmentCode = "tech_support"
	DeptCustomerService DepartmentCode = "customer_service"
	DeptBilling         DepartmentCode = "billing"
	DeptProductSupport  DepartmentCode = "product_support"
	DeptSales           DepartmentCode = "sales"
	DeptSecurity        DepartmentCode = "security"
	DeptAdmin           DepartmentCode = "admin"
	DeptOther           DepartmentCode = "other"
)

// Valid reports whether c is a known department code.
func (c DepartmentCode) Valid() bool {
	switch c {
	case DeptTechSupport, DeptCustomerService, DeptBilling, DeptProductSupport,
		DeptSales, DeptSecurity, DeptAdmin, DeptOther:
		return true
	}
	return false
}

// CategoryCode identifies a ticket category in the catalog.
type CategoryCode string

const (
	CategoryTechnical CategoryCode = "technical"
	CategoryAccount   CategoryCode = "account"
	CategoryBilling   CategoryCode = "billing"
	CategoryProduct   CategoryCode = "product"
	CategoryFeedback  CategoryCode = "feedback"
	CategorySecurity  CategoryCode = "security"
	CategoryOther     CategoryCode = "other"
)

// Valid reports whether c is a known category code.
func (c CategoryCode) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryAccount, CategoryBilling, CategoryProduct,
		CategoryFeedback, CategorySecurity, CategoryOther:
		return true
	}
	return false
}
