// Package aggregate reduces listings to one averaged price per neighbourhood.
package aggregate

import (
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/listings"
)

// Group is the aggregate of all listings in one neighbourhood.
type Group struct {
	Name    string  `json:"name"`
	Borough string  `json:"borough"` // neighbourhood group of the first listing seen
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Average float32 `json:"average"`
	StdDev  float64 `json:"std_dev"` // population standard deviation
}

// ByNeighbourhood groups listings by neighbourhood. Groups are returned in
// order of first appearance, so the result is stable for a given input.
func ByNeighbourhood(in []listings.Listing) []Group {
	order := make([]string, 0)
	prices := make(map[string][]float64)
	boroughs := make(map[string]string)

	for _, l := range in {
		if _, ok := prices[l.Neighbourhood]; !ok {
			order = append(order, l.Neighbourhood)
			boroughs[l.Neighbourhood] = l.NeighbourhoodGroup
		}
		prices[l.Neighbourhood] = append(prices[l.Neighbourhood], l.Price)
	}

	groups := make([]Group, 0, len(order))
	for _, name := range order {
		values := prices[name]

		var sum float64
		for _, v := range values {
			sum += v
		}
		_, std := stat.PopMeanStdDev(values, nil)

		groups = append(groups, Group{
			Name:    name,
			Borough: boroughs[name],
			Count:   len(values),
			Sum:     sum,
			Average: float32(sum) / float32(len(values)),
			StdDev:  std,
		})
	}
	return groups
}
