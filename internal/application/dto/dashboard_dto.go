package dto

// OrderCounts contadores de órdenes por estado para el dashboard admin.
type OrderCounts struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Processing  int `json:"processing"`
	Shipped     int `json:"shipped"`
	Delivered   int `json:"delivered"`
	Undelivered int `json:"undelivered"`
	Cancelled   int `json:"cancelled"`
}

// UserCounts contadores de usuarios por rol.
type UserCounts struct {
	Customers int `json:"customers"`
	Riders    int `json:"riders"`
	Admins    int `json:"admins"`
	Total     int `json:"total"`
}

// DashboardResponse resumen del dashboard admin. Se calcula fresco en
// cada petición; ruta admin de baja frecuencia, sin caché.
type DashboardResponse struct {
	Orders       OrderCounts     `json:"orders"`
	Users        UserCounts      `json:"users"`
	RecentOrders []OrderResponse `json:"recentOrders"`
}

// RiderStatsCounts contadores del panel de repartidor.
type RiderStatsCounts struct {
	TotalAssigned     int `json:"totalAssigned"`
	PendingDeliveries int `json:"pendingDeliveries"`
	DeliveredOrders   int `json:"deliveredOrders"`
	UndeliveredOrders int `json:"undeliveredOrders"`
}

// RiderStatsResponse estadísticas + últimas órdenes asignadas.
type RiderStatsResponse struct {
	Stats        RiderStatsCounts `json:"stats"`
	RecentOrders []OrderResponse  `json:"recentOrders"`
}
