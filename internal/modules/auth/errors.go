package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountPending       = errors.New("account pending activation")
	ErrAccountInactive      = errors.New("account inactive")
	ErrUnknownAccountStatus = errors.New("unknown account status")
	ErrMissingRefreshToken  = errors.New("missing refresh token")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshExpired       = errors.New("refresh token expired")
	ErrWrongTokenCategory   = errors.New("wrong token category")
)
