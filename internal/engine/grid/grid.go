package grid

import (
	"fmt"
	"strings"
)

// AgentID 是格子的归属方，0 表示中立。
type AgentID int

const Neutral AgentID = 0

type Cell struct {
	X, Y       int
	Owner      AgentID
	Strength   int
	Production int
}

func (c Cell) String() string {
	return fmt.Sprintf("(x:%d, y:%d)[o:%d, p:%d, s:%d]", c.X, c.Y, c.Owner, c.Production, c.Strength)
}

// Grid 是环形地图，按行优先存放在一段连续数组里。
// 每回合由 transport 构造一个新的 Grid 替换旧值，规划阶段只读。
type Grid struct {
	width, height int
	cells         []Cell
}

func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", width, height))
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = Cell{X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Size() int   { return len(g.cells) }

// Index 把坐标（可越界，按环形折回）转换成数组下标。
func (g *Grid) Index(x, y int) int {
	return wrap(y, g.height)*g.width + wrap(x, g.width)
}

func (g *Grid) At(x, y int) Cell {
	return g.cells[g.Index(x, y)]
}

func (g *Grid) AtIndex(i int) Cell {
	return g.cells[i]
}

// Set 只在构造阶段（transport 解码、测试搭局面）使用。
func (g *Grid) Set(x, y int, owner AgentID, strength, production int) {
	i := g.Index(x, y)
	g.cells[i].Owner = owner
	g.cells[i].Strength = strength
	g.cells[i].Production = production
}

// NeighborPos 返回 (x,y) 沿 d 走一步后的坐标。Still 不是合法输入。
func (g *Grid) NeighborPos(x, y int, d Direction) (int, int) {
	switch d {
	case North:
		if y == 0 {
			return x, g.height - 1
		}
		return x, y - 1
	case East:
		if x == g.width-1 {
			return 0, y
		}
		return x + 1, y
	case South:
		if y == g.height-1 {
			return x, 0
		}
		return x, y + 1
	case West:
		if x == 0 {
			return g.width - 1, y
		}
		return x - 1, y
	}
	panic(fmt.Sprintf("grid: neighbor of direction %v", d))
}

func (g *Grid) Neighbor(c Cell, d Direction) Cell {
	x, y := g.NeighborPos(c.X, c.Y, d)
	return g.cells[y*g.width+x]
}

// Clone 复制一份独立的 Grid，transport 在此基础上应用回合帧。
func (g *Grid) Clone() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// OwnedBy 按行优先顺序返回 owner 的全部格子。
func (g *Grid) OwnedBy(owner AgentID) []Cell {
	var out []Cell
	for _, c := range g.cells {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out
}

func (g *Grid) CountOwned(owner AgentID) int {
	n := 0
	for _, c := range g.cells {
		if c.Owner == owner {
			n++
		}
	}
	return n
}

func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.cells[y*g.width+x].String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
