package domain

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestTally_空战绩(t *testing.T) {
	var tl Tally
	if tl.WinPct() != 0 || tl.Elo() != 0 || tl.LOS() != 50 {
		t.Fatalf("空战绩: pct=%v elo=%v los=%v", tl.WinPct(), tl.Elo(), tl.LOS())
	}
}

func TestTally_胜率与Elo(t *testing.T) {
	tl := Tally{}
	for i := 0; i < 3; i++ {
		tl.Record("A", "A", "B")
	}
	tl.Record("B", "A", "B")

	if !near(tl.WinPct(), 75) {
		t.Fatalf("胜率期望 75, got=%v", tl.WinPct())
	}
	// p=0.75 -> -log10(1/3)*400
	if !near(tl.Elo(), 400*math.Log10(3)) {
		t.Fatalf("elo 错误, got=%v", tl.Elo())
	}
	want := 50 + 50*math.Erf(2/math.Sqrt(8))
	if !near(tl.LOS(), want) {
		t.Fatalf("los 期望 %v, got=%v", want, tl.LOS())
	}
}

func TestTally_全胜与未判出(t *testing.T) {
	tl := Tally{}
	tl.Record("A", "A", "B")
	tl.Record("", "A", "B")
	if tl.Games != 2 || tl.WinsA != 1 || tl.WinsB != 0 {
		t.Fatalf("计数错误: %+v", tl)
	}
	all := Tally{Games: 2, WinsA: 2}
	if all.Elo() != 0 {
		t.Fatalf("全胜时 1/p-1=0，elo 应为 0, got=%v", all.Elo())
	}
	if all.LOS() <= 50 {
		t.Fatalf("全胜 los 应大于 50, got=%v", all.LOS())
	}
}
