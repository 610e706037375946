package auth

// Claims representa la información extraída del token del owner.
type Claims struct {
	UserID   string
	Email    string
	StudioID string
}
