package security

import (
	"bytes"
	"testing"
)

func TestSealOpen_往返(t *testing.T) {
	key := RandKey(16)
	if len(key) != 16 {
		t.Fatalf("期望 16 位密钥, got=%q", key)
	}
	plain := []byte(`{"name":"moves","msg":{"moves":[[1,2,3]]}}`)
	frame, err := Seal(plain, key)
	if err != nil {
		t.Fatalf("Seal err=%v", err)
	}
	got, err := Open(frame, key)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("往返结果不一致: %q", got)
	}
}

func TestUnZip_非法数据(t *testing.T) {
	if _, err := UnZip([]byte("not gzip")); err == nil {
		t.Fatalf("期望非 gzip 数据报错")
	}
}

func TestZip_压缩后可解压(t *testing.T) {
	data := bytes.Repeat([]byte("1 0 "), 200)
	z, err := Zip(data)
	if err != nil {
		t.Fatalf("Zip err=%v", err)
	}
	if len(z) >= len(data) {
		t.Fatalf("期望重复数据被压缩, %d >= %d", len(z), len(data))
	}
	back, err := UnZip(z)
	if err != nil || !bytes.Equal(back, data) {
		t.Fatalf("解压失败 err=%v", err)
	}
}
