package db

import "testing"

func TestDSN(t *testing.T) {
	got := DSN("root", "pw", "127.0.0.1", 3306, "halite", "utf8mb4")
	want := "root:pw@tcp(127.0.0.1:3306)/halite?charset=utf8mb4&parseTime=True&loc=Local"
	if got != want {
		t.Fatalf("got=%s", got)
	}
}
