package entity

import "time"

type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Mobile    string    `db:"mobile"`
	Address   string    `db:"address"`
	Pincode   string    `db:"pincode"`
	CreatedAt time.Time `db:"created_at"`
}
