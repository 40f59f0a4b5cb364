package messages

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.MessagesPrefix+"{$}", h.handleConversations)
	mux.HandleFunc(http.MethodPost+" "+routepath.MessagesStart, h.handleStart)
	mux.HandleFunc(http.MethodGet+" "+routepath.MessagesStart, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.ConversationPattern, h.handleThread)
	mux.HandleFunc(http.MethodPost+" "+routepath.ConversationSendPattern, h.handleSend)
	mux.HandleFunc(http.MethodGet+" "+routepath.ConversationSendPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.MessagesPrefix, h.WriteNotFound)
}
