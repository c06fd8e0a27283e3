package heuristic

import (
	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/engine/tuning"
)

// Scorer 是只读的估值函数集合，同一回合内对同一 Grid 重复调用结果相同。
type Scorer struct {
	g    *grid.Grid
	self grid.AgentID
	t    tuning.Tuning
}

func NewScorer(g *grid.Grid, self grid.AgentID, t tuning.Tuning) *Scorer {
	return &Scorer{g: g, self: self, t: t.Normalize()}
}

func (s *Scorer) Grid() *grid.Grid { return s.g }

func (s *Scorer) IsEnemy(c grid.Cell) bool {
	return c.Owner != grid.Neutral && c.Owner != s.self
}

// ExpansionValue 中立格的扩张价值：production / max(1, strength)。
func (s *Scorer) ExpansionValue(c grid.Cell) float64 {
	return float64(c.Production) / float64(max(1, c.Strength))
}

// SiteValue 目标搜索用的格子价值：己方为 0，有守军的中立格为 production/strength，其余为 production。
func (s *Scorer) SiteValue(c grid.Cell) float64 {
	if c.Owner == s.self {
		return 0
	}
	if c.Owner == grid.Neutral && c.Strength != 0 {
		return float64(c.Production) / float64(c.Strength)
	}
	return float64(c.Production)
}

// EnemyCount 统计 c 的四邻里第三方格子的数量。
func (s *Scorer) EnemyCount(c grid.Cell) int {
	n := 0
	for _, d := range grid.Cardinals {
		if s.IsEnemy(s.g.Neighbor(c, d)) {
			n++
		}
	}
	return n
}

// IsBorder 至少有一个非己方邻居。
func (s *Scorer) IsBorder(c grid.Cell) bool {
	for _, d := range grid.Cardinals {
		if s.g.Neighbor(c, d).Owner != s.self {
			return true
		}
	}
	return false
}

// IsCombatSite c 紧邻敌方格。
func (s *Scorer) IsCombatSite(c grid.Cell) bool {
	return s.EnemyCount(c) > 0
}

// CanWinTerritory c 凭自身就能拿下某个中立邻居。
func (s *Scorer) CanWinTerritory(c grid.Cell) bool {
	for _, d := range grid.Cardinals {
		n := s.g.Neighbor(c, d)
		if n.Owner == grid.Neutral && n.Strength < c.Strength {
			return true
		}
	}
	return false
}

// CombatDirection 在非己方邻居中选 combat value 最大的方向：
// 目的地的 production/strength（仅中立格）+ 自身 strength * 目的地周围敌格数。
// 四邻都是己方时返回 Still。
func (s *Scorer) CombatDirection(c grid.Cell) (grid.Direction, float64) {
	best := -1.0
	bestDir := grid.Still
	for _, d := range grid.Cardinals {
		n := s.g.Neighbor(c, d)
		if n.Owner == s.self {
			continue
		}
		v := s.CombatValue(c, n)
		if v > best {
			best = v
			bestDir = d
		}
	}
	if bestDir == grid.Still {
		return grid.Still, 0
	}
	return bestDir, best
}

func (s *Scorer) CombatValue(from, dest grid.Cell) float64 {
	v := 0.0
	if dest.Owner == grid.Neutral {
		v = s.ExpansionValue(dest)
	}
	return v + float64(from.Strength)*float64(s.EnemyCount(dest))
}

// BestBorderDirection 在中立且有守军的邻居里选扩张价值最高者。
// 若任一邻居处于交战区则 combat=true，调用方应放弃这一格。
func (s *Scorer) BestBorderDirection(c grid.Cell) (dir grid.Direction, combat bool) {
	best := 0.0
	dir = grid.Still
	for _, d := range grid.Cardinals {
		n := s.g.Neighbor(c, d)
		if s.IsCombatSite(n) {
			return grid.Still, true
		}
		if n.Owner == grid.Neutral && n.Strength != 0 {
			if v := s.ExpansionValue(n); v > best {
				best = v
				dir = d
			}
		}
	}
	return dir, false
}

// RedistributionDirection 溢出兜底：选合并后余量 cap-(own+neighbor) 最大的方向。
func (s *Scorer) RedistributionDirection(c grid.Cell) grid.Direction {
	best := -1 << 31
	bestDir := grid.Still
	for _, d := range grid.Cardinals {
		n := s.g.Neighbor(c, d)
		if headroom := s.t.StrengthCap - (c.Strength + n.Strength); headroom > best {
			best = headroom
			bestDir = d
		}
	}
	return bestDir
}

// Goal 是目标搜索的结果。
type Goal struct {
	Direction grid.Direction
	Distance  int
	Value     float64
	Found     bool
}

// GoalDirection 沿四个方向穿过己方领土寻找最近的非己方格。
// 距离更近者优先；距离在 best+band 以内时价值更高者胜出。
// 都找不到时返回 North、价值 0、Found=false。
func (s *Scorer) GoalDirection(c grid.Cell) Goal {
	maxDist := min(s.g.Width(), s.g.Height()) / s.t.GoalDistanceDivisor
	out := Goal{Direction: grid.North, Distance: -1}
	bestDist := int(^uint(0) >> 1)

	for _, d := range grid.Cardinals {
		goal := s.g.Neighbor(c, d)
		distance := 0
		for goal.Owner == s.self && distance < maxDist {
			distance++
			goal = s.g.Neighbor(goal, d)
		}
		if goal.Owner == s.self {
			continue
		}
		value := s.GoalValue(goal, d)
		if !out.Found || distance < bestDist || (distance <= bestDist+s.t.GoalDistanceBand && value > out.Value) {
			out = Goal{Direction: d, Distance: distance, Value: value, Found: true}
			bestDist = distance
		}
	}
	return out
}

// GoalValue 十字形前瞻：从 goal 起沿 d 前进 GoalForwardSteps 格，
// 每格累加自身价值与两侧 1..GoalSideDepth 格的价值。
func (s *Scorer) GoalValue(goal grid.Cell, d grid.Direction) float64 {
	value := 0.0
	side := d.Perpendicular()
	for i := 0; i < s.t.GoalForwardSteps; i++ {
		value += s.SiteValue(goal)
		for _, p := range side {
			n := goal
			for k := 0; k < s.t.GoalSideDepth; k++ {
				n = s.g.Neighbor(n, p)
				value += s.SiteValue(n)
			}
		}
		goal = s.g.Neighbor(goal, d)
	}
	return value
}
