package rotation

import (
	"context"
	"io"
)

type RotationService interface {
	// Group Shift
	CreateGroup(ctx context.Context, req CreateGroupShiftRequest) (GroupShiftResponse, error)
	GetGroup(ctx context.Context, id string) (GroupShiftResponse, error)
	ListGroups(ctx context.Context, filter GroupShiftFilter) ([]GroupShiftResponse, error)
	UpdateGroup(ctx context.Context, req UpdateGroupShiftRequest) (GroupShiftResponse, error)
	DeleteGroup(ctx context.Context, id string) error

	// Membership
	ListMembers(ctx context.Context, groupID string) ([]MemberResponse, error)
	AssignMember(ctx context.Context, req MemberRequest) error
	UnassignMember(ctx context.Context, req MemberRequest) error

	// Monthly Matrix
	GetMatrix(ctx context.Context, groupID, period string) (MatrixResponse, error)
	SaveMatrix(ctx context.Context, req SaveMatrixRequest) (MatrixResponse, error)
	GenerateMatrix(ctx context.Context, req GenerateMatrixRequest) (MatrixResponse, error)
	PreviewPattern(ctx context.Context, req PreviewPatternRequest) (PreviewResponse, error)
	ExportMatrix(ctx context.Context, groupID, period string, w io.Writer) error

	// SyncMatrix copies the matrix into every active member's schedule. On
	// per-employee failures it returns the report together with report.Err().
	SyncMatrix(ctx context.Context, req SyncMatrixRequest) (SyncReport, error)
}
