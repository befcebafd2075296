package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/trytobebee/neon_snake/pkg/api"
	"github.com/trytobebee/neon_snake/pkg/config"
	"github.com/trytobebee/neon_snake/pkg/game"
	"github.com/trytobebee/neon_snake/pkg/leaderboard"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// GameServer is one browser connection: a session plus the socket it draws to
type GameServer struct {
	conn    *websocket.Conn
	client  *leaderboard.Client
	logger  *log.Logger
	events  chan game.Event
	writeMu sync.Mutex
	cancel  context.CancelFunc
}

func newGameServer(conn *websocket.Conn, client *leaderboard.Client, logger *log.Logger, cancel context.CancelFunc) *GameServer {
	return &GameServer{
		conn:   conn,
		client: client,
		logger: logger,
		events: make(chan game.Event),
		cancel: cancel,
	}
}

// safeWriteJSON serializes writes; the session loop and leaderboard
// goroutines share the socket.
func (gs *GameServer) safeWriteJSON(v interface{}) error {
	gs.writeMu.Lock()
	defer gs.writeMu.Unlock()
	gs.conn.SetWriteDeadline(time.Now().Add(config.WriteWaitTimeout))
	return gs.conn.WriteJSON(v)
}

func (gs *GameServer) send(msg ServerMessage) {
	if err := gs.safeWriteJSON(msg); err != nil {
		gs.logger.Println("Write error:", err)
		gs.cancel()
	}
}

// Render implements game.Renderer by pushing the snapshot to the browser
func (gs *GameServer) Render(s game.Snapshot) {
	gs.send(ServerMessage{Type: "state", State: &s})
}

// onGameOver submits the captured name and score. It outlives the
// connection so a closed tab does not lose the score.
func (gs *GameServer) onGameOver(ctx context.Context) game.GameOverFunc {
	return func(name string, score int) {
		ctx := context.WithoutCancel(ctx)
		res, submitted := gs.client.ReportGameOver(ctx, name, score)
		gs.send(ServerMessage{Type: "gameover", GameOver: newGameOverView(score, res, submitted)})
		gs.refresh(ctx)
	}
}

// refresh reloads the high score from the store before sending it, so
// scores appended by other clients reach the cache.
func (gs *GameServer) refresh(ctx context.Context) {
	// On failure the client logs and keeps its cached or fallback value.
	gs.client.FetchTopRecord(ctx)
	gs.send(ServerMessage{Type: "highscore", HighScore: newHighScoreView(gs.client.HighScore(ctx))})
	st := gs.client.Standings(ctx, config.LeaderboardLimit)
	gs.send(ServerMessage{Type: "leaderboard", Leaderboard: newLeaderboardView(st)})
}

func (gs *GameServer) handleAction(ctx context.Context, msg ClientMessage) {
	if dir, ok := game.ParseDirection(msg.Action); ok {
		gs.dispatch(ctx, game.Turn(dir))
		return
	}

	switch msg.Action {
	case "start":
		gs.dispatch(ctx, game.Event{Kind: game.EventStart})
	case "pause":
		gs.dispatch(ctx, game.Event{Kind: game.EventPause})
	case "reset", "restart":
		gs.dispatch(ctx, game.Event{Kind: game.EventReset})
	case "name":
		gs.dispatch(ctx, game.Rename(leaderboard.SanitizeName(msg.Name)))
	case "refresh":
		go gs.refresh(ctx)
	default:
		gs.logger.Printf("Unknown action %q", msg.Action)
	}
}

func (gs *GameServer) dispatch(ctx context.Context, ev game.Event) {
	select {
	case gs.events <- ev:
	case <-ctx.Done():
	}
}

func (gs *GameServer) readLoop(ctx context.Context) {
	defer gs.cancel()
	for {
		var msg ClientMessage
		if err := gs.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				gs.logger.Println("Read error:", err)
			}
			return
		}
		gs.handleAction(ctx, msg)
	}
}

type wsHandler struct {
	client *leaderboard.Client
	logger *log.Logger
	tick   time.Duration

	// Tracks active IP connections
	activeIPs sync.Map
}

func newWSHandler(client *leaderboard.Client, logger *log.Logger) *wsHandler {
	return &wsHandler{client: client, logger: logger, tick: config.TickInterval}
}

func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	h.logger.Println("New WebSocket connection from:", r.RemoteAddr)

	// Get base IP address (remove port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	// Double check if this IP is already connected
	if _, loaded := h.activeIPs.LoadOrStore(ip, true); loaded {
		h.logger.Printf("Connection rejected: IP %s is already connected\n", ip)
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Already connected"))
		return
	}
	defer h.activeIPs.Delete(ip)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	gs := newGameServer(conn, h.client, h.logger, cancel)
	g := game.NewGame(config.GridSize, nil)

	// Send initial config
	gameConfig := g.GetGameConfig()
	gs.send(ServerMessage{Type: "config", Config: &gameConfig})

	session := game.NewSession(g, game.NewScheduler(h.tick, nil), gs, gs.onGameOver(ctx), h.logger)
	session.Dispatch(game.Rename(config.DefaultPlayerName))

	go gs.refresh(ctx)
	go gs.readLoop(ctx)

	if err := session.Run(ctx, gs.events); err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Println("Session error:", err)
	}
	h.logger.Println("Connection closed:", r.RemoteAddr)
}

// newRouter serves the leaderboard API, game sockets and the browser client
func newRouter(store leaderboard.Store, ws http.Handler, staticDir string, apiLogger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		api.NewServer(store, apiLogger).Mount(r)
	})
	r.Handle("/ws", ws)
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	return r
}

func main() {
	addr := flag.String("addr", config.ServerAddr, "listen address")
	dataDir := flag.String("data", config.DataDir, "directory for databases")
	staticDir := flag.String("static", config.StaticDir, "directory of static web files")
	flag.Parse()

	logger := log.New(os.Stdout, "[WS] ", log.LstdFlags)

	store, err := leaderboard.NewSQLiteStore(filepath.Join(*dataDir, config.LeaderboardDB))
	if err != nil {
		log.Fatal("Failed to open leaderboard database:", err)
	}
	defer store.Close()

	local, err := leaderboard.NewLocalCache(filepath.Join(*dataDir, config.LocalCacheDB))
	if err != nil {
		log.Fatal("Failed to open local cache:", err)
	}
	defer local.Close()

	client := leaderboard.NewClient(store, local, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    *addr,
		Handler: newRouter(store, newWSHandler(client, logger), *staticDir, nil),
		// Hijacked websocket connections are not closed by Shutdown;
		// their sessions end when this context does.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Printf("🚀 Snake Game Web Server starting on http://localhost%s\n", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	logger.Println("Server stopped")
}
