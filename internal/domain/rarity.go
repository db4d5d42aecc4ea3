package domain

import (
	"fmt"
	"strings"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var rarityOrder = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Rank returns 0 for common up to 4 for legendary, -1 for unknown values.
func (r Rarity) Rank() int {
	for i, v := range rarityOrder {
		if v == r {
			return i
		}
	}
	return -1
}

func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

func ParseRarity(s string) (Rarity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RarityCommon, nil
	}
	r := Rarity(s)
	if !r.Valid() {
		return "", fmt.Errorf("unsupported rarity %q (supported: common, uncommon, rare, epic, legendary)", s)
	}
	return r, nil
}
