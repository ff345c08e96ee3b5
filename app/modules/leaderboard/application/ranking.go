package leaderboardservice

import (
	"sort"

	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
)

// rankPlayers orders rated players by ascending rating (lower is better) and
// assigns dense 1-based ranks: equal ratings share a rank and the next
// distinct rating gets the next integer. Unrated players are left off the
// board. The sort is stable, so ties keep their player_id order.
func rankPlayers(players []playerdb.Player) []RankedPlayer {
	rated := make([]playerdb.Player, 0, len(players))
	for _, player := range players {
		if player.Rating.IsRated() {
			rated = append(rated, player)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating < rated[j].Rating
	})

	ranking := make([]RankedPlayer, len(rated))
	rank := 0
	for i, player := range rated {
		if i == 0 || player.Rating != rated[i-1].Rating {
			rank++
		}
		ranking[i] = RankedPlayer{
			Rank:       rank,
			PlayerID:   player.PlayerID,
			PlayerName: player.PlayerName,
			Rating:     player.Rating,
		}
	}
	return ranking
}
