package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	LastLogin *time.Time `json:"last_login"`

	Orders []Order `json:"-"`
}

type ProductCategory struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;index;not null" json:"name"`
	Description *string         `gorm:"size:500" json:"description"`
	Price       float64         `gorm:"not null;check:price>=0" json:"price"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Category    ProductCategory `gorm:"foreignKey:CategoryID" json:"category"`

	OrderItems []OrderItem `json:"-"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	User        *User       `json:"-"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"size:16;not null;default:pending" json:"status"`
	OrderItems  []OrderItem `json:"order_items"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"order_id"`
	Order     *Order   `json:"-"`
	ProductID uint     `gorm:"index;not null" json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null;check:quantity>0" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
}
