package domain

import "math"

// Tally 是 A 对 B 的累计战绩。
type Tally struct {
	Games int `json:"games"`
	WinsA int `json:"wins_a"`
	WinsB int `json:"wins_b"`
}

// Record 计入一局结果，winner 为空表示没有解析出胜者。
func (t *Tally) Record(winner, botA, botB string) {
	t.Games++
	switch winner {
	case "":
	case botA:
		t.WinsA++
	case botB:
		t.WinsB++
	}
}

// WinPct 是 A 在全部对局中的胜率百分比。
func (t Tally) WinPct() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.WinsA) / float64(t.Games) * 100
}

// Elo 由胜率反推的分差：-log10(1/p - 1) * 400，p 为 0 或 1/p-1 <= 0 时为 0。
func (t Tally) Elo() float64 {
	if t.Games == 0 {
		return 0
	}
	p := float64(t.WinsA) / float64(t.Games)
	if p <= 0 || 1/p-1 <= 0 {
		return 0
	}
	return -math.Log10(1/p-1) * 400
}

// LOS 是 A 强于 B 的置信度百分比，尚无胜负时为 50。
func (t Tally) LOS() float64 {
	decided := t.WinsA + t.WinsB
	if decided == 0 {
		return 50
	}
	return 50 + 50*math.Erf(float64(t.WinsA-t.WinsB)/math.Sqrt(2*float64(decided)))
}
