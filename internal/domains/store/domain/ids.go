package domain

import "github.com/google/uuid"

// Identifiers encode as canonical UUID text so they travel through JSON
// payloads (HTTP bodies, Temporal activity arguments) unchanged.

func (id ProductID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ProductID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id CustomerID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *CustomerID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id OrderID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *OrderID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}
