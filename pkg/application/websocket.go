package application

import (
	"context"
	"net/http"
	"sync"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/planhive/planhive/pkg/composables"
	"github.com/planhive/planhive/pkg/constants"
	"github.com/planhive/planhive/pkg/intl"
	"github.com/planhive/planhive/pkg/ws"
)

const (
	// ChannelImports receives a push for every finished import or export run.
	ChannelImports string = "imports"
)

type HuberOptions struct {
	Pool               *pgxpool.Pool
	Bundle             *i18n.Bundle
	Logger             *logrus.Logger
	CheckOrigin        func(r *http.Request) bool
	SupportedLanguages []string
}

type Connection interface {
	ws.Connectioner
	Locale() language.Tag
}

type WsCallback func(ctx context.Context, conn Connection) error

type Huber interface {
	http.Handler
	ForEach(channel string, f WsCallback) error
	BroadcastToChannel(channel string, message []byte)
}

func NewHub(opts *HuberOptions) Huber {
	codes := opts.SupportedLanguages
	if len(codes) == 0 {
		codes = defaultSupportedLanguageCodes()
	}
	supported := intl.GetSupportedLanguages(codes)
	supportedTags := make([]language.Tag, 0, len(supported))
	for _, lang := range supported {
		supportedTags = append(supportedTags, lang.Tag)
	}

	appHub := &huber{
		bundle:          opts.Bundle,
		pool:            opts.Pool,
		logger:          opts.Logger,
		connectionsMeta: make(map[*ws.Connection]*MetaInfo),
		supportedTags:   supportedTags,
	}
	hub := ws.NewHub(&ws.HubOptions{
		Logger:       opts.Logger,
		CheckOrigin:  opts.CheckOrigin,
		OnConnect:    appHub.onConnect,
		OnDisconnect: appHub.onDisconnect,
	})
	appHub.hub = hub
	return appHub
}

type MetaInfo struct {
	Locale language.Tag
}

type huber struct {
	hub           ws.Huber
	bundle        *i18n.Bundle
	pool          *pgxpool.Pool
	logger        *logrus.Logger
	supportedTags []language.Tag

	mu              sync.RWMutex
	connectionsMeta map[*ws.Connection]*MetaInfo
}

func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}

func (h *huber) onConnect(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
	locale := language.English
	if len(h.supportedTags) > 0 {
		tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
		if err == nil && len(tags) > 0 {
			matcher := language.NewMatcher(h.supportedTags)
			_, idx, _ := matcher.Match(tags...)
			locale = h.supportedTags[idx]
		}
	}

	h.mu.Lock()
	h.connectionsMeta[conn] = &MetaInfo{Locale: locale}
	h.mu.Unlock()

	hub.JoinChannel(ChannelImports, conn)
	return nil
}

func (h *huber) onDisconnect(conn *ws.Connection) {
	h.mu.Lock()
	delete(h.connectionsMeta, conn)
	h.mu.Unlock()
}

func (h *huber) buildContext() context.Context {
	ctx := context.WithValue(
		context.Background(),
		constants.LoggerKey,
		logrus.NewEntry(h.logger),
	)
	return composables.WithPool(ctx, h.pool)
}

func (h *huber) ForEach(channel string, f WsCallback) error {
	ctx := h.buildContext()

	for _, conn := range h.hub.ConnectionsInChannel(channel) {
		h.mu.RLock()
		meta, ok := h.connectionsMeta[conn]
		h.mu.RUnlock()
		if !ok {
			h.logger.Error("connection meta not found")
			continue
		}

		localizer := i18n.NewLocalizer(h.bundle, meta.Locale.String())
		connCtx := intl.WithLocalizer(ctx, localizer)
		connCtx = intl.WithLocale(connCtx, meta.Locale)
		if err := f(connCtx, &connection{
			locale: meta.Locale,
			conn:   conn,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (h *huber) BroadcastToChannel(channel string, message []byte) {
	h.hub.BroadcastToChannel(channel, message)
}

type connection struct {
	locale language.Tag
	conn   ws.Connectioner
}

func (c *connection) SendMessage(message []byte) error {
	return c.conn.SendMessage(message)
}

func (c *connection) Close() error {
	return c.conn.Close()
}

func (c *connection) Locale() language.Tag {
	return c.locale
}
