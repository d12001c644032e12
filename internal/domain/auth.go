package domain

// OperatorClaims is the payload of a bearer token issued to an operator.
type OperatorClaims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
