package domain

import "time"

// Progress 是战役结束判定时的计数。
type Progress struct {
	EnemyTerritory int `json:"enemy_territory"`
	MyCount        int `json:"my_count"`
}

// TurnSnapshot 是一回合结束后的只读状态，供调试接口展示。
type TurnSnapshot struct {
	Session   string    `json:"session"`
	Turn      int       `json:"turn"`
	Self      int       `json:"self"`
	Attacking bool      `json:"attacking"`
	Engaged   bool      `json:"engaged"`
	Ended     bool      `json:"ended"`
	Enemy     int       `json:"enemy"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Owned     int       `json:"owned"`
	Moves     int       `json:"moves"`
	Revoked   int       `json:"revoked"`
	Progress  Progress  `json:"progress"`
	ElapsedMS int64     `json:"elapsed_ms"`
	At        time.Time `json:"at"`
	// 行优先，发送移动后、结束判定前的标签图
	Labels []int `json:"-"`
}

// LabelRows 把标签图按行切开。
func (s TurnSnapshot) LabelRows() [][]int {
	if s.Width <= 0 || len(s.Labels) != s.Width*s.Height {
		return nil
	}
	rows := make([][]int, s.Height)
	for y := range rows {
		rows[y] = s.Labels[y*s.Width : (y+1)*s.Width]
	}
	return rows
}
