package models

// ToolStatus is the closed set of states a tool can be in.
// Only the issuance engine moves a tool between Available and Issued.
type ToolStatus string

const (
	ToolAvailable  ToolStatus = "available"
	ToolIssued     ToolStatus = "issued"
	ToolInRepair   ToolStatus = "in_repair"
	ToolWrittenOff ToolStatus = "written_off"
)

// Valid reports whether the status is one of the known tool states.
func (s ToolStatus) Valid() bool {
	switch s {
	case ToolAvailable, ToolIssued, ToolInRepair, ToolWrittenOff:
		return true
	}
	return false
}

// Label returns the human-readable name of the status.
func (s ToolStatus) Label() string {
	switch s {
	case ToolAvailable:
		return "Available"
	case ToolIssued:
		return "Issued"
	case ToolInRepair:
		return "In repair"
	case ToolWrittenOff:
		return "Written off"
	}
	return string(s)
}

// EmployeeStatus is the closed set of states an employee can be in.
type EmployeeStatus string

const (
	EmployeeActive       EmployeeStatus = "active"
	EmployeeOnLeave      EmployeeStatus = "on_leave"
	EmployeeOnSickLeave  EmployeeStatus = "sick_leave"
	EmployeeTerminated   EmployeeStatus = "terminated"
	EmployeeBusinessTrip EmployeeStatus = "business_trip"
)

// Valid reports whether the status is one of the known employee states.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeOnLeave, EmployeeOnSickLeave, EmployeeTerminated, EmployeeBusinessTrip:
		return true
	}
	return false
}

// Label returns the human-readable name of the status.
func (s EmployeeStatus) Label() string {
	switch s {
	case EmployeeActive:
		return "Active"
	case EmployeeOnLeave:
		return "On leave"
	case EmployeeOnSickLeave:
		return "On sick leave"
	case EmployeeTerminated:
		return "Terminated"
	case EmployeeBusinessTrip:
		return "On business trip"
	}
	return string(s)
}

// IssuanceStatus is the lifecycle state of one issuance record.
type IssuanceStatus string

const (
	IssuanceOpen     IssuanceStatus = "issued"
	IssuanceReturned IssuanceStatus = "returned"
)

// Valid reports whether the status is one of the known issuance states.
func (s IssuanceStatus) Valid() bool {
	switch s {
	case IssuanceOpen, IssuanceReturned:
		return true
	}
	return false
}

// Operation is the type of an immutable history entry.
type Operation string

const (
	OperationIssue  Operation = "issue"
	OperationReturn Operation = "return"
)

// Valid reports whether the operation is one of the known history operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationIssue, OperationReturn:
		return true
	}
	return false
}
