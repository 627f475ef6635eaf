package models

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct { // CartItem is a menu item placed in a customer's cart
	ID         string  `gorm:"primaryKey" json:"_id"`
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Email      string  `gorm:"index;not null" json:"email" binding:"required"` // Owner of the cart
}

func (c *CartItem) BeforeCreate(*gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}

type Payment struct { // Payment records a completed checkout
	ID            string    `gorm:"primaryKey" json:"_id"`
	Email         string    `gorm:"index;not null" json:"email" binding:"required"`
	TransactionID string    `json:"transactionId"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Date          time.Time `json:"date"`
	CartIDs       []string  `gorm:"serializer:json" json:"cartIds"`
	MenuItemIDs   []string  `gorm:"serializer:json" json:"menuItemIds"`
	ItemNames     []string  `gorm:"serializer:json" json:"itemNames"`
	Status        string    `json:"status"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	p.ID = ensureID(p.ID)
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return nil
}
