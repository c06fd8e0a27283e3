package grid

// Direction 的取值与对局协议一致：STILL=0, NORTH=1, EAST=2, SOUTH=3, WEST=4。
type Direction int

const (
	Still Direction = iota
	North
	East
	South
	West
)

// Cardinals 是所有启发式的遍历顺序，平分时先枚举者胜出。
var Cardinals = [4]Direction{North, East, South, West}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return Still
}

// Perpendicular 返回与 d 垂直的两个方向，顺序固定。
func (d Direction) Perpendicular() [2]Direction {
	if d == North || d == South {
		return [2]Direction{East, West}
	}
	return [2]Direction{North, South}
}

func (d Direction) Valid() bool {
	return d >= Still && d <= West
}

func (d Direction) String() string {
	switch d {
	case Still:
		return "still"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "invalid"
}

// Move 是发给对局服务器的一条指令。
type Move struct {
	X, Y      int
	Direction Direction
}
