package ports

// Confirmer guards irreversible actions (revoke key, remove payment method,
// cancel subscription). A false result abandons the operation without error.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
