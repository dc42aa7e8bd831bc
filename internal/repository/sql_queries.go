package repository

// SQL used by the issuance engine. The statements are exported so tests
// can match them verbatim with pgxmock.

// SelectToolForIssueSQL locks the tool row for the duration of the
// issue transaction so the status check and the flip are one unit.
const SelectToolForIssueSQL = `SELECT status FROM tools WHERE id = $1 FOR UPDATE`

// SelectEmployeeExistsSQL verifies the receiving employee exists.
const SelectEmployeeExistsSQL = `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`

// SelectAddressExistsSQL verifies the optional destination address exists.
const SelectAddressExistsSQL = `SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1)`

// InsertIssuanceSQL opens a new issuance record.
const InsertIssuanceSQL = `
INSERT INTO issuances (tool_id, employee_id, address_id, issued_at, expected_return, notes, issued_by, status)
VALUES ($1, $2, $3, now(), $4, $5, $6, 'issued')
RETURNING id
`

// SetToolStatusSQL flips the tool status; only the engine runs it with 'issued'.
const SetToolStatusSQL = `UPDATE tools SET status = $2 WHERE id = $1`

// InsertHistorySQL appends one immutable audit-log entry.
const InsertHistorySQL = `
INSERT INTO history (operation, issuance_id, tool_id, employee_id, performed_at, performed_by, notes)
VALUES ($1, $2, $3, $4, now(), $5, $6)
`

// SelectIssuanceForReturnSQL locks the issuance row for the return transaction.
const SelectIssuanceForReturnSQL = `SELECT tool_id, employee_id, status FROM issuances WHERE id = $1 FOR UPDATE`

// CloseIssuanceSQL closes an open issuance. Notes merge on return is an
// intentional append-don't-overwrite policy: empty existing notes are
// replaced, non-empty ones get the new text appended with a separator.
const CloseIssuanceSQL = `
UPDATE issuances
SET returned_at = now(),
    status = 'returned',
    notes = CASE
        WHEN $2 = '' THEN notes
        WHEN notes = '' THEN $2
        ELSE notes || '; ' || $2
    END
WHERE id = $1
`

// SelectActiveIssuesSQL lists every open issuance joined with its tool,
// employee and optional address.
const SelectActiveIssuesSQL = `
SELECT i.id, i.tool_id, t.name, t.inventory_number, t.category,
       i.employee_id, e.full_name, COALESCE(a.name, ''),
       i.issued_at, i.expected_return, i.issued_by, i.notes
FROM issuances i
JOIN tools t ON t.id = i.tool_id
JOIN employees e ON e.id = i.employee_id
LEFT JOIN addresses a ON a.id = i.address_id
WHERE i.status = 'issued'
ORDER BY i.issued_at DESC
`

// SelectActiveIssuesForReturnSQL is the same set ordered oldest-first so
// the longest-outstanding loans surface first for operators.
const SelectActiveIssuesForReturnSQL = `
SELECT i.id, i.tool_id, t.name, t.inventory_number, t.category,
       i.employee_id, e.full_name, COALESCE(a.name, ''),
       i.issued_at, i.expected_return, i.issued_by, i.notes
FROM issuances i
JOIN tools t ON t.id = i.tool_id
JOIN employees e ON e.id = i.employee_id
LEFT JOIN addresses a ON a.id = i.address_id
WHERE i.status = 'issued'
ORDER BY i.issued_at ASC
`

// SelectHistorySQL lists recent audit-log entries, newest first.
const SelectHistorySQL = `
SELECT id, operation, issuance_id, tool_id, employee_id, performed_at, performed_by, notes
FROM history
ORDER BY performed_at DESC, id DESC
LIMIT $1
`
