package errs

import "errors"

var (
	MissingToken       = errors.New("authorization header missing")
	InvalidToken       = errors.New("invalid token")
	UnsupportedSigning = errors.New("unsupported signing method")
	GeneratingToken    = errors.New("error generating token")
)
