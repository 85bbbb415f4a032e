package benachrichtigung_dto

import "github.com/Xenn-00/vorgang-meister/internal/entity"

type InboxResponse struct {
	Items  []entity.BenachrichtigungEntity `json:"items"`
	Unread int64                           `json:"unread"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkReadResponse struct {
	Marked int64 `json:"marked"`
}
