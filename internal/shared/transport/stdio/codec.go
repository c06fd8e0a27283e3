package stdio

import (
	"errors"
	"strconv"
	"strings"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/modules/kit/errx"
)

// MaxStrength 是对局规则的 strength 上限。
const MaxStrength = 255

var (
	errShortFrame = errors.New("frame ended early")
	errOverflow   = errors.New("run length exceeds map size")
)

func protocolErr(field string, cause error) error {
	return errx.ErrProtocol.WithData("field", field).WithCause(cause)
}

// parseInt 解析单个非负整数字段。
func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, protocolErr(field, err)
	}
	if v < 0 {
		return 0, protocolErr(field, errors.New("negative value "+s))
	}
	return v, nil
}

// ParseTag 解析第一行的己方 id。
func ParseTag(line string) (grid.AgentID, error) {
	v, err := parseInt("player_tag", strings.TrimSpace(line))
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, protocolErr("player_tag", errors.New("tag 0 is neutral"))
	}
	return grid.AgentID(v), nil
}

// ParseSize 解析 "width height"。
func ParseSize(line string) (int, int, error) {
	f := strings.Fields(line)
	if len(f) != 2 {
		return 0, 0, protocolErr("size", errors.New("want 2 fields, got "+strconv.Itoa(len(f))))
	}
	w, err := parseInt("width", f[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := parseInt("height", f[1])
	if err != nil {
		return 0, 0, err
	}
	if w == 0 || h == 0 {
		return 0, 0, protocolErr("size", errors.New("empty map"))
	}
	return w, h, nil
}

// ParseProductions 解析按行优先排列的 width*height 个 production。
func ParseProductions(line string, width, height int) ([]int, error) {
	f := strings.Fields(line)
	if len(f) < width*height {
		return nil, protocolErr("productions", errShortFrame)
	}
	out := make([]int, width*height)
	for i := range out {
		v, err := parseInt("production", f[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// NewGrid 用 production 构造一张全中立、strength 为 0 的地图。
func NewGrid(width, height int, productions []int) *grid.Grid {
	g := grid.New(width, height)
	for i, p := range productions {
		g.Set(i%width, i/width, grid.Neutral, 0, p)
	}
	return g
}

// DecodeFrame 在 base 的拷贝上应用一帧：先是 "count owner" 游程对，
// 铺满 width*height 格后是同样数量的 strength。base 不会被修改。
func DecodeFrame(line string, base *grid.Grid) (*grid.Grid, error) {
	f := strings.Fields(line)
	size := base.Size()
	width := base.Width()
	next := base.Clone()

	pos := 0
	cell := 0
	for cell < size {
		if pos+1 >= len(f) {
			return nil, protocolErr("owners", errShortFrame)
		}
		count, err := parseInt("run_count", f[pos])
		if err != nil {
			return nil, err
		}
		owner, err := parseInt("owner", f[pos+1])
		if err != nil {
			return nil, err
		}
		pos += 2
		if count == 0 || cell+count > size {
			return nil, protocolErr("run_count", errOverflow)
		}
		for k := 0; k < count; k++ {
			c := next.AtIndex(cell)
			next.Set(cell%width, cell/width, grid.AgentID(owner), c.Strength, c.Production)
			cell++
		}
	}

	if len(f)-pos < size {
		return nil, protocolErr("strengths", errShortFrame)
	}
	for i := 0; i < size; i++ {
		s, err := parseInt("strength", f[pos+i])
		if err != nil {
			return nil, err
		}
		if s > MaxStrength {
			return nil, protocolErr("strength", errors.New("strength above cap "+f[pos+i]))
		}
		c := next.AtIndex(i)
		next.Set(i%width, i/width, c.Owner, s, c.Production)
	}
	return next, nil
}

// EncodeMoves 输出一行 "x y d" 三元组。
func EncodeMoves(moves []grid.Move) string {
	var b strings.Builder
	for i, m := range moves {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(m.X))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(m.Y))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(m.Direction)))
	}
	return b.String()
}

// EncodeFrame 是 DecodeFrame 的逆过程，回放和测试用它生成帧。
func EncodeFrame(g *grid.Grid) string {
	var b strings.Builder
	size := g.Size()
	for i := 0; i < size; {
		owner := g.AtIndex(i).Owner
		j := i
		for j < size && g.AtIndex(j).Owner == owner {
			j++
		}
		b.WriteString(strconv.Itoa(j - i))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(owner)))
		b.WriteByte(' ')
		i = j
	}
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(g.AtIndex(i).Strength))
	}
	return b.String()
}

// EncodeProductions 输出按行优先排列的 production。
func EncodeProductions(g *grid.Grid) string {
	parts := make([]string, g.Size())
	for i := range parts {
		parts[i] = strconv.Itoa(g.AtIndex(i).Production)
	}
	return strings.Join(parts, " ")
}
