package models

import (
	"time"

	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
)

// Order is the header row of a placed order.
type Order struct {
	ID                int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID            int64             `gorm:"column:user_id;not null;index" json:"user_id"`
	TotalAmount       float64           `gorm:"column:total_amount;not null" json:"total_amount"`
	Status            enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	DeliveryAddress   string            `gorm:"column:delivery_address;not null" json:"delivery_address"`
	EstimatedDelivery *time.Time        `gorm:"column:estimated_delivery" json:"estimated_delivery"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
