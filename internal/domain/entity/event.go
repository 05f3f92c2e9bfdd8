package entity

// Tipos de evento publicados hacia la capa de notificaciones (dashboard, websockets).
const (
	EventOrderUpdate = "order-update"
	EventNewSale     = "new-sale"
	EventShiftUpdate = "shift-update"
)
