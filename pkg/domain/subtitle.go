package domain

// Subtitle is one timed cue from an episode transcript.
// Start and End are offsets in seconds from the beginning of the episode.
type Subtitle struct {
	Start float64 `bson:"start" json:"start"`
	End   float64 `bson:"end" json:"end"`
	Text  string  `bson:"text" json:"text"`
}

// Utterance is the speaker-attributed speech extracted from a subtitle
// following the "[Speaker] spoken text" convention.
type Utterance struct {
	Speaker string `json:"speaker"`
	Speech  string `json:"speech"`
}
