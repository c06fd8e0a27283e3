package security

import "testing"

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award("zbot"); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("zbot")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.Name != "zbot" {
		t.Fatalf("期望 claims.Name==zbot, got=%v", claims)
	}
	t.Log(token)
}

func TestParseToken_密钥不一致应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Award("zbot")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望换密钥后解析失败")
	}
}
