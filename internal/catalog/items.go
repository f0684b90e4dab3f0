// Package catalog provides the collectible item catalog for the gacha system.
package catalog

// Rarity represents the rarity tier of a collectible item.
type Rarity string

// Rarity tiers, in ascending order of value.
const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Roll probabilities per tier, in parts per hundred. Drawn in the listed
// order, so Common covers [0,50), Rare [50,80), Epic [80,99), Legendary [99,100).
const (
	CommonWeight    = 50
	RareWeight      = 30
	EpicWeight      = 19
	LegendaryWeight = 1
)

// Item is one collectible in the catalog.
type Item struct {
	ID     int64
	Name   string
	Emoji  string
	Rarity Rarity
}

// Items contains the full catalog keyed by item ID.
// Easily extensible - just add new items to this map.
var Items = map[int64]Item{
	1:  {ID: 1, Name: "Wooden Spoon", Emoji: "🥄", Rarity: Common},
	2:  {ID: 2, Name: "Rusty Coin", Emoji: "🪙", Rarity: Common},
	3:  {ID: 3, Name: "Lucky Clover", Emoji: "🍀", Rarity: Common},
	4:  {ID: 4, Name: "Old Boot", Emoji: "🥾", Rarity: Common},
	5:  {ID: 5, Name: "Silver Chalice", Emoji: "🏆", Rarity: Rare},
	6:  {ID: 6, Name: "Jade Amulet", Emoji: "🧿", Rarity: Rare},
	7:  {ID: 7, Name: "Crystal Ball", Emoji: "🔮", Rarity: Rare},
	8:  {ID: 8, Name: "Golden Crown", Emoji: "👑", Rarity: Epic},
	9:  {ID: 9, Name: "Phoenix Feather", Emoji: "🪶", Rarity: Epic},
	10: {ID: 10, Name: "Dragon Scale", Emoji: "🐉", Rarity: Legendary},
}

// rarityOrder is the ascending tier order used for combining.
var rarityOrder = []Rarity{Common, Rare, Epic, Legendary}

// Get returns the item with the given ID.
func Get(id int64) (Item, bool) {
	item, ok := Items[id]
	return item, ok
}

// ByRarity returns all items of the given rarity, ordered by ID.
func ByRarity(r Rarity) []Item {
	var items []Item
	for id := int64(1); id <= int64(len(Items)); id++ {
		if item, ok := Items[id]; ok && item.Rarity == r {
			items = append(items, item)
		}
	}
	return items
}

// NextRarity returns the tier above r. The second result is false when r is
// already the highest tier.
func NextRarity(r Rarity) (Rarity, bool) {
	for i, tier := range rarityOrder {
		if tier == r && i+1 < len(rarityOrder) {
			return rarityOrder[i+1], true
		}
	}
	return "", false
}

// PickRarity maps a uniform draw in [0,1) to a rarity tier using the
// configured weights.
func PickRarity(roll float64) Rarity {
	switch {
	case roll < float64(CommonWeight)/100:
		return Common
	case roll < float64(CommonWeight+RareWeight)/100:
		return Rare
	case roll < float64(CommonWeight+RareWeight+EpicWeight)/100:
		return Epic
	default:
		return Legendary
	}
}
