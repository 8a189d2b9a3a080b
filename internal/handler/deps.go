package handler

import (
	"supportchat/internal/app/chat"
	"supportchat/internal/app/faq"
	"supportchat/internal/app/widget"
	"supportchat/internal/configs"
)

type AppDeps struct {
	Widget  *widget.Service
	Hub     *chat.TranscriptHub
	Catalog *faq.Catalog
	Config  *configs.AppConfig
}
