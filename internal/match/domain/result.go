package domain

import "time"

// Result 是一局对局的落库记录，带上该局结束时的累计统计。
type Result struct {
	Id     int       `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id"`
	Batch  string    `gorm:"column:batch;type:varchar(64);index:idx_batch_game;not null;comment:批次ID" json:"batch"`
	GameNo int       `gorm:"column:game_no;index:idx_batch_game;comment:局号" json:"game_no"`
	Seed   int       `gorm:"column:seed;comment:地图种子" json:"seed"`
	Width  int       `gorm:"column:width" json:"width"`
	Height int       `gorm:"column:height" json:"height"`
	Seat1  string    `gorm:"column:seat1;type:varchar(255)" json:"seat1"`
	Seat2  string    `gorm:"column:seat2;type:varchar(255)" json:"seat2"`
	Winner string    `gorm:"column:winner;type:varchar(255);comment:胜者，空为未判出" json:"winner"`
	WinsA  int       `gorm:"column:wins_a" json:"wins_a"`
	WinsB  int       `gorm:"column:wins_b" json:"wins_b"`
	WinPct float64   `gorm:"column:win_pct" json:"win_pct"`
	Elo    float64   `gorm:"column:elo" json:"elo"`
	LOS    float64   `gorm:"column:los" json:"los"`
	CTime  time.Time `gorm:"column:ctime;autoCreateTime" json:"ctime"`
}

func (Result) TableName() string {
	return "match_result"
}
