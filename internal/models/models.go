package models

import "time"

// Tool represents a physical item tracked by inventory number.
// Its Status field is owned by the issuance engine: all other code
// treats it as read-only.
type Tool struct {
	ID              int64      // Unique identifier for the tool
	Name            string     // Display name of the tool
	Description     string     // Free-text description
	InventoryNumber string     // Human-assigned inventory number, unique
	SerialNumber    string     // Manufacturer serial number
	Category        string     // Category name, e.g. "Power tools"
	Status          ToolStatus // Current lifecycle state
	PhotoPath       string     // Optional path to a photo
	Barcode         string     // Optional barcode value, unique when present
	CreatedAt       time.Time  // Timestamp of record creation
}

// Employee represents a member of the staff roster.
type Employee struct {
	ID         int64          // Unique identifier for the employee
	FullName   string         // Full name of the employee
	Position   string         // Job position
	Department string         // Department name
	Phone      string         // Phone number
	Email      string         // Email address
	Status     EmployeeStatus // Current employment state
	CreatedAt  time.Time      // Timestamp of record creation
}

// Address is a named location a tool may be issued to.
type Address struct {
	ID          int64  // Unique identifier for the address
	Name        string // Short display name, required
	FullAddress string // Optional full address string
}

// Issuance is the record of one loan of a tool to an employee,
// open (issued) until returned.
type Issuance struct {
	ID             int64          // Unique identifier for the issuance
	ToolID         int64          // Issued tool
	EmployeeID     int64          // Receiving employee
	AddressID      *int64         // Optional destination address
	IssuedAt       time.Time      // Set by the engine at creation
	ExpectedReturn time.Time      // Caller-supplied return deadline, date-only
	ReturnedAt     *time.Time     // Nil until returned
	Notes          string         // Free text, appended to on return
	IssuedBy       string         // Name of the issuing agent
	Status         IssuanceStatus // Open or returned
}

// HistoryEntry is an immutable audit-log row created for every
// issue and return. It is never updated or deleted.
type HistoryEntry struct {
	ID          int64     // Unique identifier for the entry
	Operation   Operation // Issue or return
	IssuanceID  int64     // Originating issuance record
	ToolID      int64     // Tool involved
	EmployeeID  int64     // Employee involved
	PerformedAt time.Time // When the operation happened
	PerformedBy string    // Name of the performing agent
	Notes       string    // Notes snapshot at operation time
}

// ActiveIssue is an open issuance joined with its tool, employee
// and optional address for list views.
type ActiveIssue struct {
	ID              int64     // Issuance identifier
	ToolID          int64     // Tool identifier
	ToolName        string    // Tool display name
	InventoryNumber string    // Tool inventory number
	Category        string    // Tool category
	EmployeeID      int64     // Employee identifier
	EmployeeName    string    // Employee full name
	AddressName     string    // Empty when no address was recorded
	IssuedAt        time.Time // When the tool was issued
	ExpectedReturn  time.Time // Return deadline
	IssuedBy        string    // Issuing agent
	Notes           string    // Current notes
}

// ReturnCandidate is an active issue annotated for the returns view:
// whole days in use and an overdue flag.
type ReturnCandidate struct {
	ActiveIssue

	DaysInUse int  // Floor of whole days since IssuedAt
	Overdue   bool // ExpectedReturn is strictly before today
}
