package models

import "time"

// PersonInfo holds the personal fields shared by anyone the bank deals
// with. Embedded in Customer by composition, there is no separate person
// table.
type PersonInfo struct {
	Name           string
	Gender         string
	Age            int
	Identification string
	Address        string
	Phone          string
}

type Customer struct {
	ID int64
	PersonInfo

	// Bcrypt hash, never the plain password
	HashedPassword string

	Active    bool
	Number    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
