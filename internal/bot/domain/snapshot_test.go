package domain

import "testing"

func TestLabelRows_按行切分(t *testing.T) {
	s := TurnSnapshot{Width: 3, Height: 2, Labels: []int{1, 2, 3, -1, -2, 0}}
	rows := s.LabelRows()
	if len(rows) != 2 || rows[1][1] != -2 || rows[0][2] != 3 {
		t.Fatalf("切分错误: %v", rows)
	}
	if (TurnSnapshot{Width: 2, Height: 2, Labels: []int{1}}).LabelRows() != nil {
		t.Fatalf("尺寸不符时应返回 nil")
	}
}
