package session

import "github.com/pixil98/go-fishery/internal/game"

// UpgradeCosts is the flat price of one level on each track.
var UpgradeCosts = map[game.Track]int{
	game.TrackRod:       500,
	game.TrackStock:     300,
	game.TrackBoat:      1000,
	game.TrackMarketing: 400,
	game.TrackBait:      600,
	game.TrackIce:       800,
	game.TrackLuck:      2500,
}

// prerequisite keeps a track locked until another has passed a level.
type prerequisite struct {
	track game.Track
	above int
}

var prerequisites = map[game.Track]prerequisite{
	game.TrackBoat:      {track: game.TrackRod, above: 1},
	game.TrackMarketing: {track: game.TrackStock, above: 1},
	game.TrackBait:      {track: game.TrackRod, above: 2},
	game.TrackIce:       {track: game.TrackBoat, above: 1},
	game.TrackLuck:      {track: game.TrackBoat, above: 2},
}

// Unlocked reports whether a track can be bought at the given levels.
func Unlocked(l game.Levels, t game.Track) bool {
	p, ok := prerequisites[t]
	if !ok {
		return true
	}
	lvl, err := l.Level(p.track)
	return err == nil && lvl > p.above
}
