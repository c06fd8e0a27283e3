package domain

// Game 是一局对局的参数。Seat1 先入座，对应 halite 输出里的玩家 1。
type Game struct {
	Number int
	Seed   int
	Width  int
	Height int
	Seat1  string
	Seat2  string
}

type ScheduleConfig struct {
	BotA     string
	BotB     string
	Seed     int
	MinSize  int
	MaxSize  int
	SizeStep int
}

// Schedule 生成对局序列：座次每局交换；奇数局种子加一，
// 第一局之后每个奇数局地图加大 SizeStep，超过 MaxSize 回到 MinSize。
// 同一种子、同一尺寸的地图双方各先手一次。
type Schedule struct {
	cfg    ScheduleConfig
	number int
	seed   int
	size   int
}

func NewSchedule(cfg ScheduleConfig) *Schedule {
	if cfg.MinSize <= 0 {
		cfg.MinSize = 20
	}
	if cfg.MaxSize < cfg.MinSize {
		cfg.MaxSize = max(cfg.MinSize, 40)
	}
	if cfg.SizeStep <= 0 {
		cfg.SizeStep = 10
	}
	return &Schedule{cfg: cfg, seed: cfg.Seed, size: cfg.MinSize}
}

func (s *Schedule) Next() Game {
	s.number++
	odd := s.number%2 == 1
	if s.number > 1 && odd {
		s.size += s.cfg.SizeStep
		if s.size > s.cfg.MaxSize {
			s.size = s.cfg.MinSize
		}
	}
	g := Game{Number: s.number, Width: s.size, Height: s.size}
	if odd {
		s.seed++
		g.Seat1, g.Seat2 = s.cfg.BotA, s.cfg.BotB
	} else {
		g.Seat1, g.Seat2 = s.cfg.BotB, s.cfg.BotA
	}
	g.Seed = s.seed
	return g
}
