package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const sessionIDKey contextKey = iota

// getSessionID extracts the editor session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// sessionMiddleware extracts an editor session ID from the
// Editor-Session-Id header (HTTP) or request metadata (stdio), so
// tools can omit session_id once a session is established.
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			// Try HTTP header first (HTTP transport)
			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get("Editor-Session-Id")
			}

			// If not in header, check metadata (stdio transport)
			// Note: Some notifications (like "initialized") have nil params,
			// so we must check carefully to avoid nil pointer dereference.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					// Use defer/recover to safely handle cases where GetMeta
					// is called on a nil underlying value (SDK quirk)
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["session_id"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			}

			return next(ctx, method, req)
		}
	}
}
