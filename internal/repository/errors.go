package repository

import "errors"

// Sentinel errors returned by the repository. Their text is shown to
// end users verbatim, so every message names the concrete reason.
var (
	// ErrToolNotFound is returned when the referenced tool does not exist.
	ErrToolNotFound = errors.New("tool not found")
	// ErrEmployeeNotFound is returned when the referenced employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrAddressNotFound is returned when the referenced address does not exist.
	ErrAddressNotFound = errors.New("address not found")
	// ErrIssuanceNotFound is returned when the referenced issuance record does not exist.
	ErrIssuanceNotFound = errors.New("issuance record not found")

	// ErrToolUnavailable is returned when issuing a tool that is not available.
	// The wrapped message carries the tool's current status.
	ErrToolUnavailable = errors.New("tool is not available for issue")
	// ErrAlreadyReturned is returned when returning an issuance that is already closed.
	ErrAlreadyReturned = errors.New("issuance is already returned")
	// ErrStatusManagedByEngine is returned when a caller tries to set a tool
	// status that only the issuance engine may set.
	ErrStatusManagedByEngine = errors.New("tool status 'issued' is managed by the issuance engine")

	// ErrToolHasOpenIssue is returned when deleting or re-flagging a tool with an open issuance.
	ErrToolHasOpenIssue = errors.New("tool has an open issuance and cannot be modified")
	// ErrEmployeeHasOpenIssue is returned when deleting an employee with an open issuance.
	ErrEmployeeHasOpenIssue = errors.New("employee has an open issuance and cannot be deleted")
	// ErrAddressHasOpenIssue is returned when deleting an address referenced by an open issuance.
	ErrAddressHasOpenIssue = errors.New("address is referenced by an open issuance and cannot be deleted")

	// ErrDuplicateInventoryNumber is returned when the inventory number is already taken.
	ErrDuplicateInventoryNumber = errors.New("a tool with this inventory number already exists")
	// ErrDuplicateBarcode is returned when the barcode is already assigned to another tool.
	ErrDuplicateBarcode = errors.New("a tool with this barcode already exists")
	// ErrEmptyName is returned when a required name field is missing.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrEmptyInventoryNumber is returned when a tool is created without an inventory number.
	ErrEmptyInventoryNumber = errors.New("inventory number must not be empty")
	// ErrInvalidStatus is returned when a status value is outside the known set.
	ErrInvalidStatus = errors.New("unknown status value")

	// ErrNoData is returned by aggregates that are meaningless over an
	// empty sample, e.g. average usage time with zero returned records.
	ErrNoData = errors.New("no data for the requested aggregate")
)
