package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrShopNotOwned       = fmt.Errorf("%w: shop is not owned by requester", ErrForbidden)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOperatorExists     = errors.New("operator already exists")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrShopNotFound       = errors.New("shop not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72
