package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"HaliteBot/internal/engine/grid"
	"HaliteBot/internal/shared/security"
	"HaliteBot/internal/shared/transport"
	"HaliteBot/internal/shared/transport/stdio"
	"HaliteBot/modules/kit/errx"
	"HaliteBot/modules/kit/logx"
)

type inbound struct {
	body *RespBody
	err  error
}

// Client 通过 websocket 接入对局服务器，实现 transport.Transport。
type Client struct {
	conn *websocket.Conn
	key  string
	log  logx.Logger

	seq     int64
	writeMu sync.Mutex

	inbox     chan inbound
	done      chan struct{}
	closeOnce sync.Once
}

var _ transport.Transport = (*Client)(nil)

// Dial 拨号并完成握手：请求头带 bot 名签发的 JWT，服务端首帧下发会话密钥。
func Dial(ctx context.Context, url, botName string, l logx.Logger) (*Client, error) {
	if l == nil {
		l = logx.Nop()
	}
	token, err := security.Award(botName)
	if err != nil {
		return nil, errx.ErrBadConfig.WithData("stage", "award").WithCause(err)
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("url", url).WithCause(err)
	}

	c := &Client{
		conn:  conn,
		log:   l,
		inbox: make(chan inbound, 16),
		done:  make(chan struct{}),
	}
	if err := c.handshake(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	go c.readMsgLoop()

	l.WithContext(ctx).Info("ws connected", zap.String("url", url))
	return c, nil
}

func (c *Client) handshake() error {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return errx.ErrUnavailable.WithData("stage", "handshake").WithCause(err)
	}
	// 握手帧只压缩不加密
	plain, err := security.UnZip(data)
	if err != nil {
		return errx.ErrProtocol.WithData("stage", "handshake").WithCause(err)
	}
	body := RespBody{}
	if err := json.Unmarshal(plain, &body); err != nil {
		return errx.ErrProtocol.WithData("stage", "handshake").WithCause(err)
	}
	if body.Name != HandshakeMsg {
		return errx.ErrProtocol.WithData("stage", "handshake").WithCause(fmt.Errorf("unexpected message %q", body.Name))
	}
	h := Handshake{}
	if err := mapstructure.Decode(body.Msg, &h); err != nil || h.Key == "" {
		return errx.ErrProtocol.WithData("stage", "handshake").WithCause(errors.Join(errors.New("missing key"), err))
	}
	c.key = h.Key
	return nil
}

func (c *Client) readMsgLoop() {
	defer close(c.inbox)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.push(inbound{err: err})
			return
		}

		// 1.解压缩 2.解密
		plain, err := security.Open(data, c.key)
		if err != nil {
			c.log.Error("ws client decode frame", zap.Error(err))
			continue
		}
		// 3.转为 json
		body := &RespBody{}
		if err := json.Unmarshal(plain, body); err != nil {
			c.log.Error("ws client unmarshal json", zap.Error(err))
			continue
		}
		if !c.push(inbound{body: body}) {
			return
		}
	}
}

func (c *Client) push(in inbound) bool {
	select {
	case c.inbox <- in:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) next(ctx context.Context) (*RespBody, error) {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errx.ErrTimeout.WithCause(ctx.Err())
		}
		return nil, ctx.Err()
	case in, ok := <-c.inbox:
		if !ok {
			return nil, transport.ErrGameOver
		}
		if in.err != nil {
			if websocket.IsCloseError(in.err, websocket.CloseNormalClosure) {
				return nil, transport.ErrGameOver
			}
			return nil, errx.ErrUnavailable.WithCause(in.err)
		}
		if in.body.Name == GameOverName {
			return nil, transport.ErrGameOver
		}
		return in.body, nil
	}
}

func (c *Client) write(name string, msg any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.seq++
	data, err := json.Marshal(&ReqBody{Seq: c.seq, Name: name, Msg: msg})
	if err != nil {
		return errx.ErrInternal.WithCause(err)
	}
	frame, err := security.Seal(data, c.key)
	if err != nil {
		return errx.ErrInternal.WithCause(err)
	}
	// 压缩后的密文是二进制字节流，必须走 BinaryMessage
	if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return errx.ErrUnavailable.WithData("msg", name).WithCause(err)
	}
	return nil
}

func expect(body *RespBody, name string, dst any) error {
	if body.Name != name {
		return errx.ErrProtocol.WithData("want", name).WithCause(fmt.Errorf("unexpected message %q", body.Name))
	}
	if err := mapstructure.WeakDecode(body.Msg, dst); err != nil {
		return errx.ErrProtocol.WithData("msg", name).WithCause(err)
	}
	return nil
}

func (c *Client) ReceiveInitialState(ctx context.Context) (*grid.Grid, grid.AgentID, error) {
	body, err := c.next(ctx)
	if err != nil {
		return nil, 0, err
	}
	m := InitMsg{}
	if err := expect(body, InitName, &m); err != nil {
		return nil, 0, err
	}
	if m.PlayerTag <= 0 || m.Width <= 0 || m.Height <= 0 {
		return nil, 0, errx.ErrProtocol.WithData("msg", InitName).WithDataMap(map[string]any{
			"player_tag": m.PlayerTag, "width": m.Width, "height": m.Height,
		})
	}
	productions, err := stdio.ParseProductions(m.Productions, m.Width, m.Height)
	if err != nil {
		return nil, 0, err
	}
	g, err := stdio.DecodeFrame(m.Frame, stdio.NewGrid(m.Width, m.Height, productions))
	if err != nil {
		return nil, 0, err
	}
	return g, grid.AgentID(m.PlayerTag), nil
}

func (c *Client) SendInit(_ context.Context, botName string) error {
	return c.write(InitAckName, &InitAckMsg{BotName: botName})
}

func (c *Client) ReceiveTurnUpdate(ctx context.Context, prev *grid.Grid) (*grid.Grid, error) {
	body, err := c.next(ctx)
	if err != nil {
		return nil, err
	}
	m := FrameMsg{}
	if err := expect(body, FrameName, &m); err != nil {
		return nil, err
	}
	return stdio.DecodeFrame(m.Frame, prev)
}

func (c *Client) SendMoves(_ context.Context, moves []grid.Move) error {
	return c.write(MovesName, &MovesMsg{Moves: stdio.EncodeMoves(moves)})
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = c.conn.Close()
	})
}
