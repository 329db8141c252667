package simple

type DevCardType int

const (
	NoneDevCardType DevCardType = iota
	KnightCard
	RoadBuildingCard
	DiscoveryCard
	MonopolyCard
	CapitolCard
	LibraryCard
	UniversityCard
	TempleCard
	TowersCard
)

var DevCardTypeNames = map[DevCardType]string{
	NoneDevCardType:  "None",
	KnightCard:       "Knight",
	RoadBuildingCard: "RoadBuilding",
	DiscoveryCard:    "Discovery",
	MonopolyCard:     "Monopoly",
	CapitolCard:      "Capitol",
	LibraryCard:      "Library",
	UniversityCard:   "University",
	TempleCard:       "Temple",
	TowersCard:       "Towers",
}

// IsVP reports whether the card is a hidden victory point card.
func (d DevCardType) IsVP() bool {
	return d >= CapitolCard && d <= TowersCard
}

type DevCardAge int

const (
	OldCards DevCardAge = iota
	NewCards
)

// DevCardSet holds a player's development cards, split by age: cards
// bought this turn cannot be played until the next turn.
type DevCardSet struct {
	counts [2]map[DevCardType]int
}

func NewDevCardSet() DevCardSet {
	return DevCardSet{counts: [2]map[DevCardType]int{
		{}, {},
	}}
}

func (ds DevCardSet) Amount(age DevCardAge, t DevCardType) int {
	return ds.counts[age][t]
}

func (ds *DevCardSet) Add(n int, age DevCardAge, t DevCardType) {
	ds.counts[age][t] += n
}

func (ds *DevCardSet) Subtract(n int, age DevCardAge, t DevCardType) {
	ds.counts[age][t] -= n
	if ds.counts[age][t] < 0 {
		ds.counts[age][t] = 0
	}
}

func (ds DevCardSet) Total() int {
	t := 0
	for _, byType := range ds.counts {
		for _, n := range byType {
			t += n
		}
	}
	return t
}

// VPAmount counts hidden victory point cards of both ages.
func (ds DevCardSet) VPAmount() int {
	t := 0
	for _, byType := range ds.counts {
		for c, n := range byType {
			if c.IsVP() {
				t += n
			}
		}
	}
	return t
}

// NewToOld ages every newly bought card; called at end of turn.
func (ds *DevCardSet) NewToOld() {
	for c, n := range ds.counts[NewCards] {
		ds.counts[OldCards][c] += n
	}
	ds.counts[NewCards] = map[DevCardType]int{}
}
