package controllers

import (
	"github.com/gorilla/mux"

	"github.com/planhive/planhive/pkg/application"
)

// WebSocketController exposes the hub upgrade endpoint. Clients joining the
// imports channel receive a push for every finished import or export run.
type WebSocketController struct {
	app application.Application
}

func NewWebSocketController(app application.Application) application.Controller {
	return &WebSocketController{app: app}
}

func (c *WebSocketController) Key() string {
	return "/ws"
}

func (c *WebSocketController) Register(r *mux.Router) {
	r.Handle("/ws", c.app.Websocket())
}
