package domain

import (
	"time"
)

// EventKind names an observable ledger side effect.
type EventKind string

const (
	EventCampaignCreation     EventKind = "CampaignCreation"
	EventDonation             EventKind = "Donation"
	EventCollectionWithdrawal EventKind = "CollectionWithdrawal"
	EventDonationWithdrawal   EventKind = "DonationWithdrawal"
)

// Event is a record of a committed ledger operation. Account is the owner for
// CampaignCreation, the donor for Donation and the recipient for both
// withdrawal kinds. Seq is assigned by the store when the event is appended.
// It only grows, but a store backed by a database sequence may skip values
// that a rolled back transaction drew.
type Event struct {
	Seq        uint64    `json:"seq"`
	Kind       EventKind `json:"kind"`
	CampaignID uint64    `json:"campaign_id"`
	Account    Address   `json:"account"`
	Amount     uint64    `json:"amount"`
	At         time.Time `json:"at"`
}
