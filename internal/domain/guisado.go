package domain

import "time"

const (
	AvailabilityAvailable = "AVAILABLE"
	AvailabilityLow       = "LOW"
	AvailabilitySoldOut   = "SOLD_OUT"
)

var availabilityLabels = map[string]string{
	AvailabilityAvailable: "Disponible",
	AvailabilityLow:       "Queda poco",
	AvailabilitySoldOut:   "Agotado",
}

// Guisado es el platillo del dia.
type Guisado struct {
	ID           uint
	Name         string
	Description  *string
	Availability string
	Date         time.Time
}

func (g Guisado) IsSoldOut() bool {
	return g.Availability == AvailabilitySoldOut
}

func AvailabilityLabel(state string) string {
	return availabilityLabels[state]
}

// ParseAvailability acepta el codigo o la etiqueta en espanol, sin distinguir mayusculas.
func ParseAvailability(value string) (string, bool) {
	for code, label := range availabilityLabels {
		if equalFold(value, code) || equalFold(value, label) {
			return code, true
		}
	}
	return "", false
}

// AvailabilityEvent es la notificacion de cambio de un guisado, con su estado nuevo.
type AvailabilityEvent struct {
	Guisado Guisado
}
