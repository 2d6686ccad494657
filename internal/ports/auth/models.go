package auth

// Claims es lo que el verifier extrae del token. UserID identifica al dueño.
type Claims struct {
	UserID string
	Email  string
}
