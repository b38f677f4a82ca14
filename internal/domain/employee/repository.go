package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	// ActiveMembersOf returns the active employees assigned to the group, ordered by employee code.
	ActiveMembersOf(ctx context.Context, companyID string, groupShiftID string) ([]Employee, error)
	// UpdateGroupShift assigns the employee to a group, or unassigns when groupShiftID is nil.
	UpdateGroupShift(ctx context.Context, id string, groupShiftID *string, companyID string) error
}
