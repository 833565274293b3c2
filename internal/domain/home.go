package domain

import (
	"cmp"
	"time"
)

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
	PropertyApartment   PropertyType = "APARTMENT"
)

// ParsePropertyType valida un tipo de propiedad recibido como texto.
func ParsePropertyType(raw string) (PropertyType, bool) {
	switch p := PropertyType(raw); p {
	case PropertyResidential, PropertyCondo, PropertyApartment:
		return p, true
	default:
		return "", false
	}
}

type Image struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
}

type Home struct {
	ID           int64        `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        float64      `json:"price"`
	Bedrooms     int          `json:"number_of_bedrooms"`
	Bathrooms    float64      `json:"number_of_bathrooms"`
	LandSize     float64      `json:"land_size"`
	PropertyType PropertyType `json:"property_type"`
	RealtorID    int64        `json:"realtor_id"`
	Images       []Image      `json:"images,omitempty"`
	ListedAt     time.Time    `json:"listed_at"`
}

// HomeUpdate contiene los campos modificables de un listado.
// El dueño (RealtorID) no es modificable.
type HomeUpdate struct {
	Address      *string       `json:"address,omitempty"`
	City         *string       `json:"city,omitempty"`
	Price        *float64      `json:"price,omitempty"`
	Bedrooms     *int          `json:"number_of_bedrooms,omitempty"`
	Bathrooms    *float64      `json:"number_of_bathrooms,omitempty"`
	LandSize     *float64      `json:"land_size,omitempty"`
	PropertyType *PropertyType `json:"property_type,omitempty"`
}

// Range es una cota opcional por cada lado; un lado nil no restringe.
type Range[T cmp.Ordered] struct {
	Gte *T `json:"gte,omitempty"`
	Lte *T `json:"lte,omitempty"`
}

// HomeFilter es el predicado de búsqueda consumido por el repositorio.
// Un filtro vacío coincide con todos los listados.
type HomeFilter struct {
	City         string          `json:"city,omitempty"`
	Price        *Range[float64] `json:"price,omitempty"`
	PropertyType PropertyType    `json:"propertyType,omitempty"`
	Bedrooms     *Range[int]     `json:"bedrooms,omitempty"`
	Bathrooms    *Range[float64] `json:"bathrooms,omitempty"`
	LandSize     *Range[float64] `json:"landSize,omitempty"`
}
