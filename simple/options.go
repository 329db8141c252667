package simple

// GameOptions selects the rule variants for one game.  The zero value
// is not usable; call DefaultOptions.
type GameOptions struct {
	MaxPlayers int // 4 or 6

	// Victory point total that wins the game.
	VPTarget int

	// SeaBoard enables the island map with ships, ports around outlying
	// islands, the pirate, and gold/fog hexes.
	SeaBoard bool

	// NoSevensRounds rerolls any 7 during the first N rounds (option "N7").
	// 0 disables.
	NoSevensRounds int

	// NoTrading forbids player-to-player trades (option "NT"); bank and
	// port trades stay available.
	NoTrading bool

	// BreakClumps re-shuffles a land layout containing a run of this
	// many or more adjacent same-type hexes (option "BC").  0 disables.
	BreakClumps int

	// ThirdSettlement adds a third initial settlement+road round.
	ThirdSettlement bool

	// ClothVillages puts neutral cloth-trading villages on the
	// outlying islands (option "CV").  Needs SeaBoard.  Cloth is worth
	// 1 VP per 2, and the game ends early once the villages run dry.
	ClothVillages bool
}

func DefaultOptions() GameOptions {
	return GameOptions{
		MaxPlayers:  4,
		VPTarget:    10,
		BreakClumps: 4,
	}
}

// SpecialBuilding reports whether the six-player special building
// phase is in effect.
func (o GameOptions) SpecialBuilding() bool {
	return o.MaxPlayers > 4
}
