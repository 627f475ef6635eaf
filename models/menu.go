package models

import "gorm.io/gorm"

type MenuItem struct { // MenuItem is a dish on the restaurant menu
	ID       string  `gorm:"primaryKey" json:"_id"`
	Name     string  `gorm:"not null" json:"name" binding:"required"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `gorm:"index" json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
}

func (m *MenuItem) BeforeCreate(*gorm.DB) error {
	m.ID = ensureID(m.ID)
	return nil
}

type Review struct { // Review is a customer testimonial shown on the home page
	ID      string  `gorm:"primaryKey" json:"_id"`
	Name    string  `json:"name"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	r.ID = ensureID(r.ID)
	return nil
}
