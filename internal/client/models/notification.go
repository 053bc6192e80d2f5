package models

type NotificationType string

const (
	NotificationShareAccept   NotificationType = "share_accept"
	NotificationDocView       NotificationType = "doc_view"
	NotificationInviteRequest NotificationType = "invite_request"
)

type Notification struct {
	ID      string
	Type    NotificationType
	Message string
	Time    string
	Read    bool
}
