package service

import (
	"cmp"

	"realtor-api/internal/domain"
)

// HomeSearchParams son los parámetros opcionales de búsqueda; nil significa ausente.
type HomeSearchParams struct {
	City         *string
	PropertyType *domain.PropertyType
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *float64
	MaxBathrooms *float64
	MinLandSize  *float64
	MaxLandSize  *float64
}

// BuildHomeFilter traduce los parámetros a un único filtro. Un campo ausente no
// restringe nada; una cota ausente no se reemplaza por 0 ni por infinito.
func BuildHomeFilter(p HomeSearchParams) domain.HomeFilter {
	var filter domain.HomeFilter
	if p.City != nil && *p.City != "" {
		filter.City = *p.City
	}
	if p.PropertyType != nil && *p.PropertyType != "" {
		filter.PropertyType = *p.PropertyType
	}
	filter.Price = newRange(p.MinPrice, p.MaxPrice)
	filter.Bedrooms = newRange(p.MinBedrooms, p.MaxBedrooms)
	filter.Bathrooms = newRange(p.MinBathrooms, p.MaxBathrooms)
	filter.LandSize = newRange(p.MinLandSize, p.MaxLandSize)
	return filter
}

func newRange[T cmp.Ordered](min, max *T) *domain.Range[T] {
	if min == nil && max == nil {
		return nil
	}
	r := &domain.Range[T]{}
	if min != nil {
		v := *min
		r.Gte = &v
	}
	if max != nil {
		v := *max
		r.Lte = &v
	}
	return r
}
