package constants

// InvoiceStatus is the canonical status for rows in invoices.
type InvoiceStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPending   InvoiceStatus = "pending"   // stored, awaiting review
	StatusProcessed InvoiceStatus = "processed" // extraction completed
	StatusFailed    InvoiceStatus = "failed"    // terminal failure
)
