package repository

import (
	"context"
	"time"

	"github.com/inpredservice11-beep/instruments/internal/models"
)

// Repository is the persistent store: it owns every entity and is the
// only component that mutates them. The issuance engine methods are the
// sole writers of tool status and issuance lifecycle fields.
type Repository struct {
	db  Database
	now func() time.Time
}

// CatalogManager covers CRUD over tools, employees and addresses.
type CatalogManager interface {
	CreateTool(ctx context.Context, tool models.Tool) (int64, error)
	UpdateTool(ctx context.Context, tool models.Tool) error
	MarkToolStatus(ctx context.Context, toolID int64, status models.ToolStatus) error
	DeleteTool(ctx context.Context, toolID int64) error
	GetToolByID(ctx context.Context, toolID int64) (models.Tool, error)
	ListTools(ctx context.Context, filter ToolFilter) ([]models.Tool, error)

	CreateEmployee(ctx context.Context, employee models.Employee) (int64, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) error
	DeleteEmployee(ctx context.Context, employeeID int64) error
	GetEmployeeByID(ctx context.Context, employeeID int64) (models.Employee, error)
	ListEmployees(ctx context.Context, query string) ([]models.Employee, error)

	CreateAddress(ctx context.Context, address models.Address) (int64, error)
	UpdateAddress(ctx context.Context, address models.Address) error
	DeleteAddress(ctx context.Context, addressID int64) error
	ListAddresses(ctx context.Context) ([]models.Address, error)
}

// IssuanceManager is the issuance/return engine: the sole authority for
// moving a tool between available and issued.
type IssuanceManager interface {
	Issue(ctx context.Context, params IssueParams) (int64, error)
	Return(ctx context.Context, issuanceID int64, notes, returnedBy string) error
	BatchReturn(ctx context.Context, issuanceIDs []int64, notes, returnedBy string) []ReturnOutcome
	ActiveIssues(ctx context.Context) ([]models.ActiveIssue, error)
	ActiveIssuesForReturn(ctx context.Context) ([]models.ReturnCandidate, error)
	History(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

// StatsReader covers the read-only aggregation queries.
type StatsReader interface {
	GetGeneralStats(ctx context.Context) (models.GeneralStats, error)
	GetCategoryStats(ctx context.Context) ([]models.CategoryStat, error)
	GetTopEmployees(ctx context.Context, limit int) ([]models.EmployeeUsage, error)
	GetMostUsedTools(ctx context.Context, limit int) ([]models.ToolUsage, error)
	GetUsageTime(ctx context.Context) (models.UsageTimeStats, error)
	IssuesByMonth(ctx context.Context) ([]models.MonthCount, error)
	ReturnsByMonth(ctx context.Context) ([]models.MonthCount, error)
	ActiveByDay(ctx context.Context) ([]models.DayCount, error)
	IssuesByAddress(ctx context.Context) ([]models.AddressCount, error)
	OverdueByCategory(ctx context.Context) ([]models.CategoryCount, error)
	ToolsByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// NewRepository creates a new Repository instance with the provided Database.
func NewRepository(db Database) *Repository {
	return &Repository{db: db, now: time.Now}
}

// ToolFilter narrows ListTools. Zero values mean "no filter"; Query is
// matched case-insensitively against name, inventory number and barcode.
type ToolFilter struct {
	Query    string
	Category string
	Status   models.ToolStatus
}

// IssueParams carries everything needed to open one issuance.
type IssueParams struct {
	ToolID         int64
	EmployeeID     int64
	AddressID      *int64
	ExpectedReturn time.Time
	Notes          string
	IssuedBy       string
}

// ReturnOutcome is the per-item result of a batch return.
type ReturnOutcome struct {
	IssuanceID int64
	Err        error
}
