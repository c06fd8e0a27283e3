package attack

import (
	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/engine/tuning"
)

// Progress 是一次战役结束判定时的计数。
type Progress struct {
	// 标签为正（敌方侧）的格子数
	EnemyTerritory int
	// 其中已经变成己方的格子数
	MyCount int
}

// Classifier 持有进攻区标签图和战役状态，跨回合存活。
// 标签：正数为敌方侧距接触点的距离，负数为己方侧距离，0 表示不在进攻区。
// 只有 Engage 与 CheckCampaignEnd 会修改状态，规划阶段其余时间只读。
type Classifier struct {
	width, height int
	labels        []int
	attacking     bool
	enemy         grid.AgentID
	t             tuning.Tuning

	queue []int
}

func New(width, height int, t tuning.Tuning) *Classifier {
	return &Classifier{
		width:  width,
		height: height,
		labels: make([]int, width*height),
		t:      t.Normalize(),
		queue:  make([]int, 0, width*height),
	}
}

// SetTuning 在回合开始时调用，不影响已经生成的标签。
func (c *Classifier) SetTuning(t tuning.Tuning) { c.t = t.Normalize() }

func (c *Classifier) Active() bool { return c.attacking }

// Enemy 返回当前战役的对手，未进攻时为 Neutral。
func (c *Classifier) Enemy() grid.AgentID { return c.enemy }

func (c *Classifier) Radius() int {
	return min(c.width, c.height) / c.t.AttackRadiusDivisor
}

func (c *Classifier) Label(x, y int) int {
	return c.labels[wrap(y, c.height)*c.width+wrap(x, c.width)]
}

func (c *Classifier) LabelAt(i int) int { return c.labels[i] }

// Labels 返回标签图的拷贝，供快照和回放使用。
func (c *Classifier) Labels() []int {
	out := make([]int, len(c.labels))
	copy(out, c.labels)
	return out
}

// DetectEnemy 按北东南西取接触点的第一个第三方邻居，接触点自身的归属不参与判断。
func DetectEnemy(g *grid.Grid, self grid.AgentID, contact grid.Cell) (grid.AgentID, bool) {
	for _, d := range grid.Cardinals {
		if n := g.Neighbor(contact, d); isThirdParty(n.Owner, self) {
			return n.Owner, true
		}
	}
	return grid.Neutral, false
}

// Engage 以 contact 为起点发起战役。已在进攻中或 contact 周围没有对手时返回 false。
func (c *Classifier) Engage(g *grid.Grid, self grid.AgentID, contact grid.Cell) bool {
	if c.attacking {
		return false
	}
	enemy, ok := DetectEnemy(g, self, contact)
	if !ok {
		return false
	}
	c.fill(g, self, enemy, contact)
	c.enemy = enemy
	c.attacking = true
	return true
}

// fill 从接触点做广度优先标注，只穿过己方和 enemy 的格子。
// 标签达到半径上限的格子不再向外扩展，超出半径的格子保持 0。
func (c *Classifier) fill(g *grid.Grid, self, enemy grid.AgentID, contact grid.Cell) {
	clear(c.labels)
	radius := c.Radius()

	start := g.Index(contact.X, contact.Y)
	c.labels[start] = 1
	c.queue = append(c.queue[:0], start)
	for head := 0; head < len(c.queue); head++ {
		cur := g.AtIndex(c.queue[head])
		label := c.labels[c.queue[head]]
		if label >= radius {
			continue
		}
		for _, d := range grid.Cardinals {
			n := g.Neighbor(cur, d)
			i := g.Index(n.X, n.Y)
			if c.labels[i] != 0 || (n.Owner != self && n.Owner != enemy) {
				continue
			}
			c.labels[i] = label + 1
			c.queue = append(c.queue, i)
		}
	}

	for i := range c.labels {
		if g.AtIndex(i).Owner == self {
			c.labels[i] = -c.labels[i]
		}
	}
}

// Progress 统计正标签格子及其中已归己方的数量。
func (c *Classifier) Progress(g *grid.Grid, self grid.AgentID) Progress {
	var p Progress
	for i, l := range c.labels {
		if l <= 0 {
			continue
		}
		p.EnemyTerritory++
		if g.AtIndex(i).Owner == self {
			p.MyCount++
		}
	}
	return p
}

// CheckCampaignEnd 每回合发送移动后调用一次。
// myCount >= enemyTerritory - CampaignEndTolerance 时结束战役并清空标签图。
func (c *Classifier) CheckCampaignEnd(g *grid.Grid, self grid.AgentID) (bool, Progress) {
	if !c.attacking {
		return false, Progress{}
	}
	p := c.Progress(g, self)
	if p.MyCount >= p.EnemyTerritory-c.t.EndTolerance() {
		c.Reset()
		return true, p
	}
	return false, p
}

// Reset 放弃当前战役。
func (c *Classifier) Reset() {
	clear(c.labels)
	c.attacking = false
	c.enemy = grid.Neutral
}

func isThirdParty(owner, self grid.AgentID) bool {
	return owner != grid.Neutral && owner != self
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
