package service

import (
	"encoding/json"
	"testing"

	"realtor-api/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func filterJSON(t *testing.T, f domain.HomeFilter) string {
	t.Helper()
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal filter: %v", err)
	}
	return string(out)
}

func TestBuildHomeFilter(t *testing.T) {
	apartment := domain.PropertyApartment

	cases := []struct {
		name   string
		params HomeSearchParams
		want   string
	}{
		{
			name:   "no params matches everything",
			params: HomeSearchParams{},
			want:   `{}`,
		},
		{
			name:   "only min price",
			params: HomeSearchParams{MinPrice: ptr(100.0)},
			want:   `{"price":{"gte":100}}`,
		},
		{
			name:   "only max price",
			params: HomeSearchParams{MaxPrice: ptr(200.0)},
			want:   `{"price":{"lte":200}}`,
		},
		{
			name: "full example",
			params: HomeSearchParams{
				City:         ptr("Toronto"),
				PropertyType: &apartment,
				MinPrice:     ptr(100.0),
				MaxPrice:     ptr(200.0),
			},
			want: `{"city":"Toronto","price":{"gte":100,"lte":200},"propertyType":"APARTMENT"}`,
		},
		{
			name:   "empty city is ignored",
			params: HomeSearchParams{City: ptr("")},
			want:   `{}`,
		},
		{
			name:   "zero bound is still a bound",
			params: HomeSearchParams{MinPrice: ptr(0.0)},
			want:   `{"price":{"gte":0}}`,
		},
		{
			name: "secondary ranges",
			params: HomeSearchParams{
				MinBedrooms:  ptr(2),
				MaxBathrooms: ptr(3.5),
				MinLandSize:  ptr(500.0),
				MaxLandSize:  ptr(900.0),
			},
			want: `{"bedrooms":{"gte":2},"bathrooms":{"lte":3.5},"landSize":{"gte":500,"lte":900}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := filterJSON(t, BuildHomeFilter(tc.params)); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestBuildHomeFilter_CopiesBounds(t *testing.T) {
	min := 100.0
	filter := BuildHomeFilter(HomeSearchParams{MinPrice: &min})
	min = 5
	if *filter.Price.Gte != 100 {
		t.Fatalf("expected filter to own its bounds, got %v", *filter.Price.Gte)
	}
}
