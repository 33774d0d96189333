package domain

import "errors"

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrPlanNotFound   = errors.New("plan not found in catalog")
	ErrNoSubscription = errors.New("no active subscription")
	ErrSecretNotFound = errors.New("secret not found")
)
