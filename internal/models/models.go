package models

import (
	"time"
)

type Item struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name    string  `gorm:"not null"                  json:"name"`
	Price   float64 `gorm:"not null"                  json:"price"`
	Deleted bool    `gorm:"not null;default:false"    json:"deleted"`
}

type Cart struct {
	ID    uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Items []CartLine `gorm:"foreignKey:CartID"        json:"items"`
	Price float64    `gorm:"not null"                 json:"price"`
}

// CartLine is one item+quantity entry inside a cart. Name and Available are
// snapshots taken when the line was first added.
type CartLine struct {
	LineID    uint   `gorm:"primaryKey;autoIncrement"    json:"-"`
	CartID    uint   `gorm:"index;not null"              json:"-"`
	ItemID    uint   `gorm:"not null"                    json:"id"`
	Name      string `gorm:"not null"                    json:"name"`
	Quantity  uint   `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Available bool   `gorm:"not null"                    json:"available"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"uid"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Name         string    `gorm:"not null"                 json:"name"`
	Birthdate    time.Time `json:"birthdate"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
