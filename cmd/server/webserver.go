package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/marben/mandelzoom/internal/config"
)

//go:embed static
var staticFiles embed.FS

// webServer creates server serving the embedded viewer page
// and the websocket endpoint the page connects to.
// Sessions end when ctx is done.
func webServer(ctx context.Context, cfg *config.Config) *http.Server {
	h := &hub{cfg: cfg}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.websocketHandler)
	mux.Handle("/", http.FileServer(http.FS(static)))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Printf("listening on http://%s", displayAddr(cfg.Server.Addr))
	return srv
}

// websocketHandler handles the http ws endpoint
// every accepted websocket gets its own zoom session
func (h *hub) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.Server.OriginPatterns,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("got connection from: %s, sessions: %d", r.RemoteAddr, h.incSessions())
	defer func() {
		log.Printf("%s left, sessions: %d", r.RemoteAddr, h.decSessions())
	}()

	s, err := newSession(r.RemoteAddr, c, h.cfg)
	if err != nil {
		log.Printf("err: new session: %v", err)
		c.Close(websocket.StatusInternalError, "bad configuration")
		return
	}
	if err := s.run(r.Context()); err != nil {
		log.Printf("err: session %q: %v", r.RemoteAddr, err)
	}
}

func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
