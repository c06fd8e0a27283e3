package heuristic

import (
	"math"
	"testing"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/engine/tuning"
)

const self grid.AgentID = 1

func fill(owner grid.AgentID, production, strength, width, height int) *grid.Grid {
	g := grid.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, owner, strength, production)
		}
	}
	return g
}

func TestExpansionValue_零守军按1计(t *testing.T) {
	s := NewScorer(fill(0, 3, 0, 3, 3), self, tuning.Default())
	if v := s.ExpansionValue(grid.Cell{Production: 3, Strength: 0}); v != 3 {
		t.Fatalf("期望 3, got=%v", v)
	}
	if v := s.ExpansionValue(grid.Cell{Production: 4, Strength: 8}); v != 0.5 {
		t.Fatalf("期望 0.5, got=%v", v)
	}
}

func TestCombatDirection_平分按北东南西(t *testing.T) {
	g := fill(0, 2, 10, 5, 5)
	g.Set(2, 2, self, 50, 1)
	s := NewScorer(g, self, tuning.Default())
	d, _ := s.CombatDirection(g.At(2, 2))
	if d != grid.North {
		t.Fatalf("期望 North, got=%v", d)
	}

	// 北边变成己方后，东南西三者相同，取 East
	g.Set(2, 1, self, 5, 1)
	d, _ = s.CombatDirection(g.At(2, 2))
	if d != grid.East {
		t.Fatalf("期望 East, got=%v", d)
	}
}

func TestCombatDirection_偏向能威胁敌格的方向(t *testing.T) {
	g := fill(0, 2, 10, 5, 5)
	g.Set(2, 2, self, 50, 1)
	g.Set(2, 4, 2, 30, 1) // 南边目的地 (2,3) 紧邻敌格
	s := NewScorer(g, self, tuning.Default())
	d, v := s.CombatDirection(g.At(2, 2))
	if d != grid.South {
		t.Fatalf("期望 South, got=%v", d)
	}
	if math.Abs(v-50.2) > 1e-9 {
		t.Fatalf("期望 combat value 50.2, got=%v", v)
	}
}

func TestCombatDirection_四邻己方返回Still(t *testing.T) {
	g := fill(self, 1, 10, 3, 3)
	s := NewScorer(g, self, tuning.Default())
	if d, v := s.CombatDirection(g.At(1, 1)); d != grid.Still || v != 0 {
		t.Fatalf("期望 Still/0, got=%v/%v", d, v)
	}
}

func TestGoalDirection_穿过领土找最近边界(t *testing.T) {
	g := fill(self, 1, 10, 7, 7)
	for y := 0; y < 7; y++ {
		g.Set(6, y, 0, 5, 2)
	}
	s := NewScorer(g, self, tuning.Default())
	goal := s.GoalDirection(g.At(2, 3))
	if !goal.Found || goal.Direction != grid.West || goal.Distance != 2 {
		t.Fatalf("期望 West 距离 2, got=%+v", goal)
	}
}

func TestGoalDirection_容差带内价值优先(t *testing.T) {
	g := fill(self, 1, 10, 9, 9)
	// 北边 1 格外是贫瘠中立格，东边 2 格外是高产中立格
	g.Set(4, 2, 0, 200, 1)
	g.Set(7, 4, 0, 1, 9)
	s := NewScorer(g, self, tuning.Default())
	goal := s.GoalDirection(g.At(4, 4))
	if goal.Direction != grid.East {
		t.Fatalf("期望价值更高的 East 胜出, got=%+v", goal)
	}
}

func TestGoalDirection_找不到时默认North(t *testing.T) {
	g := fill(self, 1, 10, 6, 6)
	s := NewScorer(g, self, tuning.Default())
	goal := s.GoalDirection(g.At(3, 3))
	if goal.Found || goal.Direction != grid.North || goal.Value != 0 {
		t.Fatalf("期望默认 North/0, got=%+v", goal)
	}
}

func TestGoalValue_十字前瞻(t *testing.T) {
	g := fill(self, 1, 10, 9, 9)
	g.Set(4, 2, 0, 1, 2) // 目标格本身，价值 2
	g.Set(5, 2, 0, 0, 4) // 东侧 1 格，零守军按 production 计 4
	g.Set(3, 1, 0, 1, 1) // 沿北前进一格后西侧 1 格，价值 1
	s := NewScorer(g, self, tuning.Default())
	if v := s.GoalValue(g.At(4, 2), grid.North); v != 7 {
		t.Fatalf("期望 7, got=%v", v)
	}
}

func TestBestBorderDirection(t *testing.T) {
	g := fill(self, 1, 10, 5, 5)
	g.Set(2, 1, 0, 40, 2)
	g.Set(3, 2, 0, 10, 2)
	s := NewScorer(g, self, tuning.Default())
	d, combat := s.BestBorderDirection(g.At(2, 2))
	if combat || d != grid.East {
		t.Fatalf("期望 East 且非交战, got=%v combat=%v", d, combat)
	}

	g.Set(4, 2, 3, 10, 1)
	d, combat = s.BestBorderDirection(g.At(2, 2))
	if !combat || d != grid.Still {
		t.Fatalf("期望检测到交战区, got=%v combat=%v", d, combat)
	}
}

func TestRedistributionDirection_选余量最大(t *testing.T) {
	g := fill(self, 1, 10, 5, 5)
	g.Set(2, 2, self, 100, 1)
	g.Set(2, 1, self, 200, 1)
	g.Set(3, 2, self, 50, 1)
	g.Set(2, 3, self, 50, 1)
	g.Set(1, 2, self, 120, 1)
	s := NewScorer(g, self, tuning.Default())
	if d := s.RedistributionDirection(g.At(2, 2)); d != grid.East {
		t.Fatalf("期望 East（与 South 平分时先枚举者）, got=%v", d)
	}
}

func TestScorer_纯函数可重复(t *testing.T) {
	g := fill(0, 3, 20, 8, 8)
	for x := 2; x < 6; x++ {
		for y := 2; y < 6; y++ {
			g.Set(x, y, self, 30+x*y, 2)
		}
	}
	g.Set(7, 7, 2, 80, 3)
	before := g.String()
	s := NewScorer(g, self, tuning.Default())
	for i := 0; i < g.Size(); i++ {
		c := g.AtIndex(i)
		d1, v1 := s.CombatDirection(c)
		d2, v2 := s.CombatDirection(c)
		if d1 != d2 || v1 != v2 {
			t.Fatalf("CombatDirection 不稳定 cell=%v", c)
		}
		if s.GoalDirection(c) != s.GoalDirection(c) {
			t.Fatalf("GoalDirection 不稳定 cell=%v", c)
		}
		if s.RedistributionDirection(c) != s.RedistributionDirection(c) {
			t.Fatalf("RedistributionDirection 不稳定 cell=%v", c)
		}
	}
	if g.String() != before {
		t.Fatalf("期望估值不修改 Grid")
	}
}
