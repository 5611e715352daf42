package world

import (
	"fmt"

	"github.com/pixil98/go-fishery/internal/game"
	"github.com/pixil98/go-fishery/internal/progress"
)

const (
	catchAnyTarget   = 3
	catchAnyBase     = 50
	catchAnyPerDay   = 10
	namedPool        = 5
	namedRewardRatio = 3
	earnBase         = 100
	earnPerDay       = 50
	earnReward       = 100
)

// DailyObjectives builds the three missions of a day: a catch of anything,
// a catch of one of the first species in the catalog, and an earnings goal.
func DailyObjectives(day int, catalog *game.Catalog, rng Rand) []progress.Objective {
	objectives := []progress.Objective{{
		Id:     fmt.Sprintf("d%d-catch", day),
		Kind:   progress.KindCatch,
		Target: catchAnyTarget,
		Reward: catchAnyBase + day*catchAnyPerDay,
	}}

	if all := catalog.All(); len(all) > 0 {
		sp := all[rng.IntN(min(namedPool, len(all)))]
		objectives = append(objectives, progress.Objective{
			Id:       fmt.Sprintf("d%d-%s", day, sp.Id),
			Kind:     progress.KindCatch,
			TargetId: sp.Id,
			Target:   1,
			Reward:   sp.Price * namedRewardRatio,
		})
	}

	return append(objectives, progress.Objective{
		Id:     fmt.Sprintf("d%d-earn", day),
		Kind:   progress.KindEarn,
		Target: earnBase + day*earnPerDay,
		Reward: earnReward,
	})
}
