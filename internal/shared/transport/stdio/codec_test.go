package stdio

import (
	"errors"
	"testing"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/modules/kit/errx"
)

func TestDecodeFrame_游程与强度(t *testing.T) {
	base := NewGrid(3, 2, []int{1, 2, 3, 4, 5, 6})
	// 2 个中立、1 个 1 号、3 个 2 号
	g, err := DecodeFrame("2 0 1 1 3 2 10 20 30 40 50 60", base)
	if err != nil {
		t.Fatalf("DecodeFrame err=%v", err)
	}
	want := []grid.Cell{
		{X: 0, Y: 0, Owner: 0, Strength: 10, Production: 1},
		{X: 1, Y: 0, Owner: 0, Strength: 20, Production: 2},
		{X: 2, Y: 0, Owner: 1, Strength: 30, Production: 3},
		{X: 0, Y: 1, Owner: 2, Strength: 40, Production: 4},
		{X: 1, Y: 1, Owner: 2, Strength: 50, Production: 5},
		{X: 2, Y: 1, Owner: 2, Strength: 60, Production: 6},
	}
	for i, c := range want {
		if got := g.AtIndex(i); got != c {
			t.Fatalf("cell %d 期望 %v, got=%v", i, c, got)
		}
	}
	if base.AtIndex(2).Owner != 0 {
		t.Fatalf("base 不应被修改")
	}
}

func TestDecodeFrame_非法帧(t *testing.T) {
	base := NewGrid(2, 2, []int{1, 1, 1, 1})
	cases := map[string]string{
		"游程不足":   "2 0",
		"游程越界":   "5 0 1 1 1 1",
		"强度不足":   "4 0 1 1 1",
		"非数字":    "4 x 1 1 1 1",
		"强度超过上限": "4 0 1 1 1 256",
		"零长度游程":  "0 1 4 0 1 1 1 1",
	}
	for name, line := range cases {
		if _, err := DecodeFrame(line, base); !errors.Is(err, errx.ErrProtocol) {
			t.Fatalf("%s: 期望 ErrProtocol, got=%v", name, err)
		}
	}
}

func TestEncodeFrame_与解码互逆(t *testing.T) {
	g := NewGrid(4, 3, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	g.Set(1, 0, 1, 40, 2)
	g.Set(2, 0, 1, 41, 3)
	g.Set(3, 2, 2, 200, 12)
	back, err := DecodeFrame(EncodeFrame(g), NewGrid(4, 3, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}))
	if err != nil {
		t.Fatalf("DecodeFrame err=%v", err)
	}
	if back.String() != g.String() {
		t.Fatalf("编码再解码后不一致:\n%s\n%s", g, back)
	}
}

func TestEncodeMoves(t *testing.T) {
	got := EncodeMoves([]grid.Move{{X: 1, Y: 2, Direction: grid.East}, {X: 0, Y: 0, Direction: grid.Still}})
	if got != "1 2 2 0 0 0" {
		t.Fatalf("got=%q", got)
	}
	if EncodeMoves(nil) != "" {
		t.Fatalf("期望空移动输出空行")
	}
}

func TestParseSize_与Tag(t *testing.T) {
	if w, h, err := ParseSize("30 20"); err != nil || w != 30 || h != 20 {
		t.Fatalf("got=%d %d err=%v", w, h, err)
	}
	if _, _, err := ParseSize("30"); !errors.Is(err, errx.ErrProtocol) {
		t.Fatalf("期望 ErrProtocol, got=%v", err)
	}
	if _, err := ParseTag("0"); !errors.Is(err, errx.ErrProtocol) {
		t.Fatalf("期望 tag 0 非法, got=%v", err)
	}
	if tag, err := ParseTag(" 2 "); err != nil || tag != 2 {
		t.Fatalf("got=%d err=%v", tag, err)
	}
}
