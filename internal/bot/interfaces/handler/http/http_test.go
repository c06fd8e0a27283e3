package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"HaliteBot/internal/bot/domain"
	"HaliteBot/internal/replay"
	"HaliteBot/internal/shared/security"
)

type fakeBoard struct {
	snap domain.TurnSnapshot
	has  bool
	err  error
}

func (b *fakeBoard) Latest(context.Context) (domain.TurnSnapshot, bool, error) {
	return b.snap, b.has, b.err
}

func (b *fakeBoard) History(_ context.Context, limit int) ([]domain.TurnSnapshot, error) {
	out := []domain.TurnSnapshot{{Turn: 1}, {Turn: 2}, {Turn: 3}}
	if limit > 0 && limit < len(out) {
		out = out[len(out)-limit:]
	}
	return out, b.err
}

func newRouter(h *DebugHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group(""))
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) Response {
	t.Helper()
	var resp Response
	if data != nil {
		resp.Data = data
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body 非法: %v %s", err, w.Body.String())
	}
	return resp
}

func readyBoard() *fakeBoard {
	return &fakeBoard{has: true, snap: domain.TurnSnapshot{
		Turn: 7, Attacking: true, Enemy: 2, Width: 2, Height: 2, Labels: []int{1, 2, -2, 0},
	}}
}

func TestState_返回最新快照(t *testing.T) {
	r := newRouter(NewDebugHandler(readyBoard(), replay.NopRepository{}, "s", false, nil))
	w := do(r, "/debug/state", "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var snap domain.TurnSnapshot
	resp := decode(t, w, &snap)
	if resp.Code != codeOK || snap.Turn != 7 || !snap.Attacking {
		t.Fatalf("内容错误: %+v %+v", resp, snap)
	}
}

func TestAttack_按行返回标签(t *testing.T) {
	r := newRouter(NewDebugHandler(readyBoard(), replay.NopRepository{}, "s", false, nil))
	var view attackView
	decode(t, do(r, "/debug/attack", ""), &view)
	if len(view.Rows) != 2 || view.Rows[1][0] != -2 || view.Enemy != 2 {
		t.Fatalf("标签视图错误: %+v", view)
	}
}

func TestState_尚无快照返回503(t *testing.T) {
	r := newRouter(NewDebugHandler(&fakeBoard{}, replay.NopRepository{}, "s", false, nil))
	w := do(r, "/debug/state", "")
	if w.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("期望 503, got=%d", w.Code)
	}
	if resp := decode(t, w, nil); resp.Code != codeNotReady {
		t.Fatalf("期望 codeNotReady, got=%d", resp.Code)
	}
}

func TestState_内部错误返回500(t *testing.T) {
	r := newRouter(NewDebugHandler(&fakeBoard{err: errors.New("timeout")}, replay.NopRepository{}, "s", false, nil))
	if w := do(r, "/debug/state", ""); w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("期望 500, got=%d", w.Code)
	}
}

func TestTurns_limit参数(t *testing.T) {
	r := newRouter(NewDebugHandler(readyBoard(), replay.NopRepository{}, "s", false, nil))
	var hist []domain.TurnSnapshot
	decode(t, do(r, "/debug/turns?limit=2", ""), &hist)
	if len(hist) != 2 || hist[0].Turn != 2 {
		t.Fatalf("期望最近两条, got=%+v", hist)
	}
	if w := do(r, "/debug/turns?limit=x", ""); w.Code != nethttp.StatusBadRequest {
		t.Fatalf("非法 limit 期望 400, got=%d", w.Code)
	}
}

func TestReplay_默认查询当前会话(t *testing.T) {
	repo := replay.NewMemoryRepository(0)
	_ = repo.Save(context.Background(), replay.TurnRecord{Session: "cur", Turn: 4})
	_ = repo.Save(context.Background(), replay.TurnRecord{Session: "old", Turn: 9})
	r := newRouter(NewDebugHandler(readyBoard(), repo, "cur", false, nil))

	var recs []replay.TurnRecord
	decode(t, do(r, "/debug/replay", ""), &recs)
	if len(recs) != 1 || recs[0].Turn != 4 {
		t.Fatalf("期望当前会话记录, got=%+v", recs)
	}
	recs = nil
	decode(t, do(r, "/debug/replay?session=old", ""), &recs)
	if len(recs) != 1 || recs[0].Turn != 9 {
		t.Fatalf("期望 old 会话记录, got=%+v", recs)
	}
}

func TestDebug_开启鉴权后校验token(t *testing.T) {
	t.Setenv("JWT_SECRET", "debug-secret")
	r := newRouter(NewDebugHandler(readyBoard(), replay.NopRepository{}, "s", true, nil))

	if w := do(r, "/debug/state", ""); w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("无 token 期望 401, got=%d", w.Code)
	}
	if w := do(r, "/debug/state", "garbage"); w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("坏 token 期望 401, got=%d", w.Code)
	}
	token, err := security.Award("ops")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if w := do(r, "/debug/state", token); w.Code != nethttp.StatusOK {
		t.Fatalf("合法 token 期望 200, got=%d", w.Code)
	}
}
