package params

import "github.com/rotblauer/cathills/s2"

// S2HillIndexLevel is the level hill starts are indexed at.
// About a kilometer, which is about the length of a hill worth remembering.
var S2HillIndexLevel = s2.CellLevel13
