package planner

import (
	"HaliteBot/internal/engine/attack"
	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/engine/heuristic"
	"HaliteBot/internal/engine/tuning"
)

// Plan 是一回合的规划结果。
type Plan struct {
	// 按决定顺序排列，每个己方格恰好一条
	Moves []grid.Move
	// 按 grid 下标索引，非己方格为零值
	Decisions []Decision
	// 本回合是否新发起了战役
	Engaged bool
	// 复核阶段撤回的移动数
	Revoked int
}

// Planner 每回合为所有己方格各产出一个决策。
// 状态只有 Tracker（回合内）和 Classifier（跨回合），均由 Planner 单线程写入。
type Planner struct {
	self       grid.AgentID
	t          tuning.Tuning
	classifier *attack.Classifier
	tracker    *Tracker
}

func New(self grid.AgentID, classifier *attack.Classifier, t tuning.Tuning) *Planner {
	return &Planner{
		self:       self,
		t:          t.Normalize(),
		classifier: classifier,
		tracker:    NewTracker(0),
	}
}

func (p *Planner) Self() grid.AgentID { return p.self }

func (p *Planner) Classifier() *attack.Classifier { return p.classifier }

// Tracker 暴露本回合的标记，仅供检查。
func (p *Planner) Tracker() *Tracker { return p.tracker }

// SetTuning 只能在两回合之间调用。
func (p *Planner) SetTuning(t tuning.Tuning) {
	p.t = t.Normalize()
	p.classifier.SetTuning(t)
}

// turn 是单回合的工作区。
type turn struct {
	g     *grid.Grid
	s     *heuristic.Scorer
	plan  *Plan
	order []int
}

func (tn *turn) commit(i int, d Decision) {
	tn.plan.Decisions[i] = d
	tn.order = append(tn.order, i)
}

// Plan 依次执行边界预处理、主流程和复核，返回本回合的移动列表。
func (p *Planner) Plan(g *grid.Grid) *Plan {
	p.tracker.Reset(g.Size())
	tn := &turn{
		g:    g,
		s:    heuristic.NewScorer(g, p.self, p.t),
		plan: &Plan{Decisions: make([]Decision, g.Size())},
	}

	p.borderPass(tn)
	p.mainPass(tn)
	tn.plan.Revoked = reviewOverstack(g, p.t.OverstackLimit, tn.plan.Decisions, tn.order)

	tn.plan.Moves = make([]grid.Move, 0, len(tn.order))
	for _, i := range tn.order {
		c := g.AtIndex(i)
		tn.plan.Moves = append(tn.plan.Moves, grid.Move{X: c.X, Y: c.Y, Direction: tn.plan.Decisions[i].Direction})
	}
	return tn.plan
}

func (p *Planner) canGrow(c grid.Cell) bool {
	return c.Strength >= c.Production*p.t.GrowthMultiplier
}

// borderPass 面对打不下的中立边界时，调一个空闲的己方邻居过来支援。
// 被调动的是邻居，当前格留给主流程处理。
func (p *Planner) borderPass(tn *turn) {
	g := tn.g
	for i := 0; i < g.Size(); i++ {
		c := g.AtIndex(i)
		if c.Owner != p.self || p.tracker.Moved(i) || !p.canGrow(c) {
			continue
		}
		if p.classifier.LabelAt(i) != 0 {
			continue
		}

		dir, combat := tn.s.BestBorderDirection(c)
		if combat || dir == grid.Still {
			continue
		}
		border := g.Neighbor(c, dir)
		if c.Strength > border.Strength {
			continue
		}

		for _, d := range grid.Cardinals {
			helper := g.Neighbor(c, d)
			hi := g.Index(helper.X, helper.Y)
			if helper.Owner != p.self || p.tracker.Moved(hi) || tn.s.CanWinTerritory(helper) {
				continue
			}
			if min(p.t.StrengthCap, helper.Strength+c.Strength) > border.Strength {
				p.tracker.Mark(hi)
				tn.commit(hi, Move(d.Opposite(), ReasonHelp))
				break
			}
		}
	}
}

func (p *Planner) mainPass(tn *turn) {
	g := tn.g
	for i := 0; i < g.Size(); i++ {
		c := g.AtIndex(i)
		if c.Owner != p.self || !p.tracker.Mark(i) {
			continue
		}
		tn.commit(i, p.decide(tn, i, c))
	}
}

func (p *Planner) decide(tn *turn, i int, c grid.Cell) Decision {
	g, s := tn.g, tn.s

	if dir, _ := s.CombatDirection(c); dir != grid.Still {
		target := g.Neighbor(c, dir)
		if !p.classifier.Active() && p.classifier.Engage(g, p.self, target) {
			tn.plan.Engaged = true
		}
		if target.Strength < c.Strength {
			if p.attackDirected(g, i, target) {
				return Move(dir, ReasonAttack)
			}
			return Move(dir, ReasonCapture)
		}
	}

	if !p.canGrow(c) {
		return Still(ReasonGrow)
	}

	if p.classifier.Active() {
		if dir := p.pressDirection(g, i, c); dir != grid.Still {
			return Move(dir, ReasonPress)
		}
	}

	if !s.IsBorder(c) {
		goal := s.GoalDirection(c)
		n := g.Neighbor(c, goal.Direction)
		if c.Strength > p.t.OverflowMoverThreshold || n.Strength+c.Strength < p.t.StrengthCap {
			return Move(goal.Direction, ReasonGoal)
		}
		return Move(s.RedistributionDirection(c), ReasonRedistribute)
	}

	return Still(ReasonHold)
}

// attackDirected 目的地在进攻区内且标签高于当前格。
func (p *Planner) attackDirected(g *grid.Grid, i int, target grid.Cell) bool {
	if !p.classifier.Active() {
		return false
	}
	tl := p.classifier.LabelAt(g.Index(target.X, target.Y))
	return tl != 0 && tl > p.classifier.LabelAt(i)
}

// pressDirection 按北东南西枚举，取最后一个标签非 0 且高于自身的邻居。
func (p *Planner) pressDirection(g *grid.Grid, i int, c grid.Cell) grid.Direction {
	own := p.classifier.LabelAt(i)
	dir := grid.Still
	for _, d := range grid.Cardinals {
		n := g.Neighbor(c, d)
		if l := p.classifier.LabelAt(g.Index(n.X, n.Y)); l != 0 && l > own {
			dir = d
		}
	}
	return dir
}
