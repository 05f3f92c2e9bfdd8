package dto

// ErrorResponse cuerpo de error HTTP.
// Details lleva datos para armar el mensaje al usuario (montos, ítem faltante); nunca errores internos.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
