package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// noteTargeted is implemented by requests that address a single note.
type noteTargeted interface {
	NoteID() string
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, device, target note, duration and result code. Client
// errors log at warn and internal failures at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := requestAttrs(ctx, req)

			resp, err := next(ctx, req)

			attrs = append(attrs, slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			level := slog.LevelError
			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				level = slog.LevelWarn
			}
			attrs = append(attrs,
				slog.String("code", connect.CodeOf(err).String()),
				slog.Any("error", err),
			)
			slog.LogAttrs(ctx, level, "RPC error", attrs...)

			return resp, err
		}
	}
}

func requestAttrs(ctx context.Context, req connect.AnyRequest) []slog.Attr {
	attrs := []slog.Attr{slog.String("procedure", req.Spec().Procedure)}

	// Set only when RequireAuth ran first.
	if deviceID := GetDeviceID(ctx); deviceID != "" {
		attrs = append(attrs, slog.String("device_id", deviceID))
	}
	if target, ok := req.Any().(noteTargeted); ok && target.NoteID() != "" {
		attrs = append(attrs, slog.String("note_id", target.NoteID()))
	}
	return attrs
}
