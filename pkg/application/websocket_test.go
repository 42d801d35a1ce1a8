package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/planhive/planhive/pkg/intl"
)

func importsHub(t *testing.T) Huber {
	t.Helper()
	bundle := LoadBundle()
	bundle.MustParseMessageFileBytes(
		[]byte(`{"Staffing": {"Import": {"Completed": "Import completed"}}}`),
		"en.json",
	)
	bundle.MustParseMessageFileBytes(
		[]byte(`{"Staffing": {"Import": {"Completed": "Importazione completata"}}}`),
		"it.json",
	)
	return NewHub(&HuberOptions{
		Bundle:             bundle,
		Logger:             logrus.New(),
		SupportedLanguages: []string{"en", "it"},
	})
}

func dialImports(t *testing.T, srv *httptest.Server, acceptLanguage string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	if acceptLanguage != "" {
		header.Set("Accept-Language", acceptLanguage)
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func connectionCount(hub Huber) int {
	count := 0
	_ = hub.ForEach(ChannelImports, func(ctx context.Context, conn Connection) error {
		count++
		return nil
	})
	return count
}

func TestHub_ForEachLocalizesPerConnection(t *testing.T) {
	hub := importsHub(t)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	english := dialImports(t, srv, "en-US")
	italian := dialImports(t, srv, "it")

	require.Eventually(t, func() bool {
		return connectionCount(hub) == 2
	}, 2*time.Second, 10*time.Millisecond)

	messages := map[string]string{}
	require.NoError(t, hub.ForEach(ChannelImports, func(ctx context.Context, conn Connection) error {
		require.Equal(t, conn.Locale(), intl.UseLocale(ctx, language.Und))
		messages[conn.Locale().String()] = intl.MustT(ctx, "Staffing.Import.Completed")
		return nil
	}))
	require.Equal(t, map[string]string{
		"en": "Import completed",
		"it": "Importazione completata",
	}, messages)

	hub.BroadcastToChannel(ChannelImports, []byte(`{"event":"import.completed"}`))
	for _, conn := range []*websocket.Conn{english, italian} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		require.JSONEq(t, `{"event":"import.completed"}`, string(msg))
	}
}

func TestHub_ForEachSkipsDisconnected(t *testing.T) {
	hub := importsHub(t)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialImports(t, srv, "it")
	require.Eventually(t, func() bool {
		return connectionCount(hub) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return connectionCount(hub) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
