package availability

import "fonda/internal/domain"

// Apply incorpora un evento a la lista visible sin modificar la original.
// Un guisado agotado sale de la lista; cualquier otro estado reemplaza la
// entrada con el mismo id y se agrega al final. Nunca quedan ids repetidos.
func Apply(list []domain.Guisado, ev domain.AvailabilityEvent) []domain.Guisado {
	out := make([]domain.Guisado, 0, len(list)+1)
	for _, g := range list {
		if g.ID != ev.Guisado.ID {
			out = append(out, g)
		}
	}
	if !ev.Guisado.IsSoldOut() {
		out = append(out, ev.Guisado)
	}
	return out
}

// Visible filtra lo que el publico puede ver de una lista cargada.
func Visible(list []domain.Guisado) []domain.Guisado {
	out := make([]domain.Guisado, 0, len(list))
	for _, g := range list {
		if !g.IsSoldOut() {
			out = append(out, g)
		}
	}
	return out
}
