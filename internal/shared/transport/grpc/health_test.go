package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"HaliteBot/modules/kit/tracex"
)

func TestHealthServer_状态切换(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen err=%v", err)
	}
	s := NewHealthServer()
	go func() { _ = s.Serve(l) }()
	defer s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = tracex.WithTraceID(ctx, "probe-1")

	status, err := Probe(ctx, l.Addr().String())
	if err != nil || status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("期望启动时 NOT_SERVING, got=%v err=%v", status, err)
	}

	s.SetServing(true)
	status, err = Probe(ctx, l.Addr().String())
	if err != nil || status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("期望 SERVING, got=%v err=%v", status, err)
	}
}

func TestTraceMetadata_透传(t *testing.T) {
	ctx := tracex.WithSpanID(tracex.WithTraceID(context.Background(), "t-9"), "bot")
	out := injectTraceToOutgoing(ctx)

	md, _ := metadataFromOutgoing(out)
	in := extractTraceFromIncoming(incomingWith(md))
	if tid, _ := tracex.TraceIDFrom(in); tid != "t-9" {
		t.Fatalf("期望 trace id 透传, got=%q", tid)
	}
	if sid, _ := tracex.SpanIDFrom(in); sid != "bot" {
		t.Fatalf("期望 span id 透传, got=%q", sid)
	}
}

func metadataFromOutgoing(ctx context.Context) (metadata.MD, bool) {
	return metadata.FromOutgoingContext(ctx)
}

func incomingWith(md metadata.MD) context.Context {
	return metadata.NewIncomingContext(context.Background(), md)
}
