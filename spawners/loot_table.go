package spawners

import (
	"math/rand"
)

// LootTable picks item templates by relative weight
type LootTable struct {
	Entries []LootTableEntry
}

// LootTableEntry represents a single entry in a loot table
type LootTableEntry struct {
	TemplateID string
	Weight     int
}

// NewLootTable creates a new loot table
func NewLootTable(entries ...LootTableEntry) *LootTable {
	return &LootTable{Entries: entries}
}

// DefaultPotionTable is used for potion tiles when Options has no table
func DefaultPotionTable() *LootTable {
	return NewLootTable(
		LootTableEntry{TemplateID: PotionTemplate, Weight: 3},
		LootTableEntry{TemplateID: SpeedPotionTemplate, Weight: 1},
	)
}

// Pick returns a template ID with probability proportional to its weight. An
// empty table or one without positive weights yields "".
func (lt *LootTable) Pick(rng *rand.Rand) string {
	totalWeight := 0
	for _, entry := range lt.Entries {
		totalWeight += max(entry.Weight, 0)
	}
	if totalWeight == 0 {
		return ""
	}

	roll := rng.Intn(totalWeight)
	for _, entry := range lt.Entries {
		if entry.Weight <= 0 {
			continue
		}
		if roll < entry.Weight {
			return entry.TemplateID
		}
		roll -= entry.Weight
	}
	return ""
}
