package keyword

// stopWords is the fixed set of Korean particles and conjunctions excluded
// from keyword extraction. They carry no discriminative signal between
// requirements. Process-wide, read-only.
var stopWords = map[string]struct{}{
	"을":   {},
	"를":   {},
	"은":   {},
	"는":   {},
	"이":   {},
	"가":   {},
	"에":   {},
	"에서":  {},
	"및":   {},
	"그리고": {},
	"또는":  {},
	"으로":  {},
	"으로서": {},
	"으로써": {},
	"와":   {},
	"과":   {},
}

func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
