package domain

import "time"

// IdentifierType enumerates channel-native identifier kinds.
type IdentifierType string

const (
	IdentifierEmail IdentifierType = "email"
	IdentifierPhone IdentifierType = "phone"
)

// Customer is the stable cross-channel identity record.
type Customer struct {
	ID        string
	Name      string
	Email     *string
	Phone     *string
	Company   *string
	CreatedAt time.Time
}

// CustomerIdentifier maps a channel-native identifier to a customer.
// (identifier_type, identifier_value) is unique across all customers.
type CustomerIdentifier struct {
	CustomerID      string
	IdentifierType  IdentifierType
	IdentifierValue string
	Channel         Channel
}
