package game

import "fmt"

// Rarity is an ordered tier: Common < Rare < Legendary < Mythic.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityLegendary
	RarityMythic
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return fmt.Sprintf("rarity(%d)", int(r))
	}
}

// Celebrated reports whether a catch of this tier gets the big reveal.
func (r Rarity) Celebrated() bool {
	return r >= RarityLegendary
}

func (r Rarity) MarshalText() ([]byte, error) {
	if r < RarityCommon || r > RarityMythic {
		return nil, fmt.Errorf("unknown rarity: %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "common":
		*r = RarityCommon
	case "rare":
		*r = RarityRare
	case "legendary":
		*r = RarityLegendary
	case "mythic":
		*r = RarityMythic
	default:
		return fmt.Errorf("unknown rarity: %s", text)
	}
	return nil
}
