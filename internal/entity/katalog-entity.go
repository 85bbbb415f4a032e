package entity

import "time"

type PfarreiEntity struct {
	Name   string `json:"name"`
	Canton string `json:"canton"`
}

type TaetigkeitEntity struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
