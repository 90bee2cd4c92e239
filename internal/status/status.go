// status.go
package status

// Catálogo de estados del pedido. Única fuente de verdad para el
// conjunto finito de estados y sus metadatos.

// Known es la lista canónica, en orden de ciclo de vida. El dashboard
// la devuelve siempre completa para que el cliente pueda renderizar.
var Known = []string{"created", "preparing", "ready", "delivering", "delivered", "cancelled"}

var progress = map[string]int{
	"created":    10,
	"preparing":  40,
	"ready":      70,
	"delivering": 90,
	"delivered":  100,
	"cancelled":  0,
}

var labels = map[string]string{
	"created":    "Pedido Recibido",
	"preparing":  "En Preparación",
	"ready":      "Listo para Recoger",
	"delivering": "En Camino",
	"delivered":  "Entregado",
	"cancelled":  "Cancelado",
}

// Progress devuelve el porcentaje de avance del estado.
// Un estado desconocido vale 0, nunca es error.
func Progress(s string) int {
	return progress[s]
}

// Label devuelve el texto legible del estado. Para un estado
// desconocido devuelve el estado tal cual.
func Label(s string) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return s
}
