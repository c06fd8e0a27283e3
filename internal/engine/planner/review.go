package planner

import "HaliteBot/internal/engine/grid"

// reviewOverstack 按目的地汇总移动方的 strength，超过 limit 时
// 从最后决定的移动开始撤回为 Still，直到不再超限。返回撤回数量。
func reviewOverstack(g *grid.Grid, limit int, decisions []Decision, order []int) int {
	incoming := make(map[int][]int)
	var dests []int
	for _, i := range order {
		d := decisions[i]
		if !d.IsMove() {
			continue
		}
		c := g.AtIndex(i)
		x, y := g.NeighborPos(c.X, c.Y, d.Direction)
		dest := g.Index(x, y)
		if _, ok := incoming[dest]; !ok {
			dests = append(dests, dest)
		}
		incoming[dest] = append(incoming[dest], i)
	}

	revoked := 0
	for _, dest := range dests {
		movers := incoming[dest]
		total := 0
		for _, i := range movers {
			total += g.AtIndex(i).Strength
		}
		for k := len(movers) - 1; k >= 0 && total > limit; k-- {
			i := movers[k]
			total -= g.AtIndex(i).Strength
			decisions[i] = Still(ReasonRevoked)
			revoked++
		}
	}
	return revoked
}
