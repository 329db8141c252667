package simple

import (
	"fmt"
	"strings"
)

type Resource int

const (
	Clay Resource = iota
	Ore
	Sheep
	Wheat
	Wood
	ResourceCount
)

// ClothStolen stands in for a resource type when a robbery takes a
// cloth instead of a card.  Cloth thefts are announced to the whole
// table, so no hidden form exists.
const ClothStolen Resource = -2

var ResourceNames = map[Resource]string{
	Clay:  "Clay",
	Ore:   "Ore",
	Sheep: "Sheep",
	Wheat: "Wheat",
	Wood:  "Wood",
}

// ResourceSet is a hand or bundle of resource cards, one count per type.
type ResourceSet [ResourceCount]int

func NewResourceSet(clay, ore, sheep, wheat, wood int) ResourceSet {
	return ResourceSet{clay, ore, sheep, wheat, wood}
}

func (rs ResourceSet) Amount(r Resource) int {
	return rs[r]
}

func (rs *ResourceSet) Add(n int, r Resource) {
	rs[r] += n
}

func (rs *ResourceSet) Subtract(n int, r Resource) {
	rs[r] -= n
	if rs[r] < 0 {
		rs[r] = 0
	}
}

func (rs *ResourceSet) SetAmount(n int, r Resource) {
	rs[r] = n
}

func (rs *ResourceSet) AddSet(o ResourceSet) {
	for r := Clay; r < ResourceCount; r++ {
		rs[r] += o[r]
	}
}

func (rs *ResourceSet) SubtractSet(o ResourceSet) {
	for r := Clay; r < ResourceCount; r++ {
		rs.Subtract(o[r], r)
	}
}

func (rs ResourceSet) Total() int {
	t := 0
	for r := Clay; r < ResourceCount; r++ {
		t += rs[r]
	}
	return t
}

// Contains reports whether rs has at least o of every type.
func (rs ResourceSet) Contains(o ResourceSet) bool {
	for r := Clay; r < ResourceCount; r++ {
		if rs[r] < o[r] {
			return false
		}
	}
	return true
}

// Units flattens the set into one Resource per card, in type order.
// Used for drawing a uniformly random card from a hand.
func (rs ResourceSet) Units() []Resource {
	units := make([]Resource, 0, rs.Total())
	for r := Clay; r < ResourceCount; r++ {
		for i := 0; i < rs[r]; i++ {
			units = append(units, r)
		}
	}
	return units
}

func (rs ResourceSet) String() string {
	parts := make([]string, 0, ResourceCount)
	for r := Clay; r < ResourceCount; r++ {
		if rs[r] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", rs[r], ResourceNames[r]))
		}
	}
	if len(parts) == 0 {
		return "(nothing)"
	}
	return strings.Join(parts, ", ")
}
