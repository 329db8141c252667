package board

// Neutral cloth-trading villages, used on sea boards with the cloth
// option.  Villages sit on nodes, belong to no player, and cannot be
// built after setup.  Each carries its own cloth stock; the board
// keeps a general supply that backs a village once it runs out.

const (
	StartingVillageCloth = 5
	StartingGeneralCloth = 10
)

type Village struct {
	Node  Coord `json:"node"`
	Dice  int   `json:"dice"`
	Cloth int   `json:"cloth"`
}

// Villages returns the villages in placement order; treat the slice
// as read-only and mutate stock through TakeVillageCloth.
func (b *Board) Villages() []Village {
	return b.villages
}

// VillageAtNode returns the index of the village on a node, or -1.
func (b *Board) VillageAtNode(node Coord) int {
	for i, v := range b.villages {
		if v.Node == node {
			return i
		}
	}
	return -1
}

func (b *Board) PlaceVillage(node Coord, dice, cloth int) {
	b.villages = append(b.villages, Village{Node: node, Dice: dice, Cloth: cloth})
}

// TakeVillageCloth takes up to n cloth from a village, returning how
// many it actually held.
func (b *Board) TakeVillageCloth(vi, n int) int {
	v := &b.villages[vi]
	if n > v.Cloth {
		n = v.Cloth
	}
	v.Cloth -= n
	return n
}

func (b *Board) GeneralCloth() int {
	return b.generalCloth
}

func (b *Board) SetGeneralCloth(n int) {
	b.generalCloth = n
}

// TakeGeneralCloth takes up to n cloth from the general supply.
func (b *Board) TakeGeneralCloth(n int) int {
	if n > b.generalCloth {
		n = b.generalCloth
	}
	b.generalCloth -= n
	return n
}
