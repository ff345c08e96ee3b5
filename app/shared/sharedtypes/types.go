package sharedtypes

// PlayerID is a Discord snowflake identifying a player.
type PlayerID int64

// CourseID identifies one nine of a course in the fixed roster (1..12).
type CourseID int

// RoundID is the monotonic id the store assigns to a verified score record.
type RoundID int64

// Score is a raw golf score in strokes relative to par.
type Score int

// AdjustedScore is a raw score normalized by the course difficulty index.
type AdjustedScore float64

// Character is the in-game character a score was posted with.
type Character string

// Rating is a player's rolling-average rating over adjusted scores.
type Rating float64

// Unrated is the sentinel stored for players below the minimum sample size.
// It sorts after every real rating, so rated players always rank first.
const Unrated Rating = 9999

// IsRated reports whether r is a real rating rather than the sentinel.
func (r Rating) IsRated() bool {
	return r != Unrated
}

// Characters is the fixed roster accepted by score validation.
var Characters = []Character{
	"Mario", "Luigi", "Peach", "Yoshi", "Baby Mario", "Wario",
	"Donkey Kong", "Bowser", "Harry", "Plum", "Charlie", "Sonny",
	"Maple", "Metal Mario",
}

// KnownCharacter reports whether c is in the fixed character roster.
func KnownCharacter(c Character) bool {
	for _, known := range Characters {
		if c == known {
			return true
		}
	}
	return false
}
