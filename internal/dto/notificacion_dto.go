package dto

// NotificacionResponse is one feed entry, most recent first.
type NotificacionResponse struct {
	ID         string  `json:"id"`
	Mensaje    string  `json:"mensaje"`
	Tipo       string  `json:"tipo"`
	URLDestino *string `json:"url_destino,omitempty"`
	Leido      bool    `json:"leido"`
	Fecha      string  `json:"fecha"`
}
