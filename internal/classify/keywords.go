package classify

// KeywordTable maps a category to the tag keywords that indicate it.
// Tables are plain values so callers can swap in domain-specific sets.
type KeywordTable struct {
	// Detail indicates close-up object shots.
	Detail []string
	// People indicates people without a usable face.
	People []string
	// Broll indicates scenic shots with no people.
	Broll []string
}

// DefaultKeywords returns the keyword sets tuned for event footage.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Detail: []string{
			"ring", "rings", "wedding ring", "jewelry", "diamond",
			"flower", "flowers", "bouquet", "floral",
			"cake", "wedding cake", "dessert",
			"dress", "wedding dress", "gown", "veil",
			"shoes", "heels", "shoe",
			"invitation", "stationery", "card",
			"table setting", "place setting", "centerpiece",
			"candle", "candles", "decoration",
			"tie", "bow tie", "cufflinks", "watch",
			"food", "champagne", "wine glass",
		},
		People: []string{
			"person", "people", "man", "woman", "couple",
			"hand", "hands", "holding hands",
			"back", "shoulder", "shoulders",
			"silhouette", "shadow",
			"walking", "dancing", "standing",
			"bride", "groom", "bridesmaid", "groomsman",
			"guest", "guests", "crowd", "audience",
		},
		Broll: []string{
			"landscape", "outdoor", "outdoors", "nature",
			"venue", "building", "architecture", "church",
			"sky", "sunset", "sunrise", "clouds",
			"tree", "trees", "garden", "park",
			"interior", "room", "hall", "ballroom",
			"water", "lake", "ocean", "fountain",
			"sign", "entrance", "door", "window",
		},
	}
}

// compositionWideHints and compositionCloseHints steer composition
// classification for frames without faces.
var (
	compositionWideHints  = []string{"landscape", "outdoor", "venue", "building", "sky"}
	compositionCloseHints = []string{"detail", "close", "flower", "ring", "food"}
)
