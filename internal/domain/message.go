package domain

import "time"

// Message es una consulta de un comprador sobre un listado.
type Message struct {
	ID        int64     `json:"id"`
	HomeID    int64     `json:"home_id"`
	RealtorID int64     `json:"realtor_id"`
	BuyerID   int64     `json:"buyer_id"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
