package models

import (
	"time"
)

const OrderTimestampLayout = "2006-01-02 15:04:05"

type OrderItem struct {
	Product   string `json:"product"`
	ProductID string `json:"productId"`
	Cantidad  int    `json:"cantidad"`
}

// Order es el pedido normalizado que se envía al backend y se anota en el
// registro local de auditoría.
type Order struct {
	UserID    int64       `json:"userId"`
	Username  string      `json:"username"`
	FullName  string      `json:"fullName"`
	Items     []OrderItem `json:"items"`
	Timestamp string      `json:"timestamp"`
}

func NewOrder(userID int64, username, fullName string, cart *Cart, now time.Time) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, OrderItem{
			Product:   line.Product.Nombre,
			ProductID: line.Product.ID,
			Cantidad:  line.Cantidad,
		})
	}

	return &Order{
		UserID:    userID,
		Username:  username,
		FullName:  fullName,
		Items:     items,
		Timestamp: now.Format(OrderTimestampLayout),
	}
}
