package entity

import "time"

type Director struct {
	Base
	Name        string    `db:"name"`
	Dob         time.Time `db:"dob"`
	Nationality string    `db:"nationality"`
}
