package domain

import "errors"

var (
	ErrInvalidWeapon        = errors.New("invalid weapon")
	ErrInvalidShield        = errors.New("invalid shield")
	ErrInvalidLevel         = errors.New("invalid level")
	ErrInvalidHeadshotRatio = errors.New("invalid headshot ratio")
	// ErrInvalidWeaponConfig marks broken catalog data rather than bad user input.
	ErrInvalidWeaponConfig = errors.New("invalid weapon config")
)
