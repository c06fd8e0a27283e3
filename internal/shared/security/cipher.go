package security

import (
	"bytes"
	"crypto/rand"
	"io"

	"github.com/go-think/openssl"
	"github.com/klauspost/compress/gzip"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AesCBCEncrypt / AesCBCDecrypt 是 ws 帧加解密，key 长度须为 16/24/32。
func AesCBCEncrypt(src, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCEncrypt(src, key, iv, padding)
}

func AesCBCDecrypt(src, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCDecrypt(src, key, iv, padding)
}

// Zip gzip 压缩。
func Zip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnZip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Seal 把明文依次加密、压缩成一帧；Open 反向还原。key 同时作为 iv。
func Seal(plain []byte, key string) ([]byte, error) {
	enc, err := AesCBCEncrypt(plain, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		return nil, err
	}
	return Zip(enc)
}

func Open(frame []byte, key string) ([]byte, error) {
	enc, err := UnZip(frame)
	if err != nil {
		return nil, err
	}
	return AesCBCDecrypt(enc, []byte(key), []byte(key), openssl.ZEROS_PADDING)
}

// RandKey 生成 n 位字母数字密钥。
func RandKey(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = keyAlphabet[int(b[i])%len(keyAlphabet)]
	}
	return string(b)
}
