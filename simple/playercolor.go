package simple

type PlayerColor int

const (
	NonePlayerColor PlayerColor = iota
	BluePlayerColor
	RedPlayerColor
	WhitePlayerColor
	OrangePlayerColor
	GreenPlayerColor
	BrownPlayerColor
)

var PlayerColorNames = map[PlayerColor]string{
	NonePlayerColor:   "None",
	BluePlayerColor:   "Blue",
	RedPlayerColor:    "Red",
	WhitePlayerColor:  "White",
	OrangePlayerColor: "Orange",
	GreenPlayerColor:  "Green",
	BrownPlayerColor:  "Brown",
}
