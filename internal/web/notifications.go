package web

import (
	"log/slog"
	"net/http"

	"github.com/uniewms/carrierboard/internal/freight"
)

const notificationPageSize = 50

// notificationsData is the template data for the notifications page.
type notificationsData struct {
	PageData
	Notifications []freight.Notification
	UnreadCount   int
	UnreadOnly    bool
}

// NotificationsPage lists platform notifications, optionally unread only.
func (s *Server) NotificationsPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := notificationsData{
		PageData:   PageData{Title: "Notifications", User: &viewer.User},
		UnreadOnly: r.URL.Query().Get("unread") == "1",
	}
	flashFromQuery(&data.PageData, r)

	list, err := s.Freight.ListNotifications(r.Context(), viewer.Token, data.UnreadOnly, notificationPageSize)
	if err != nil {
		slog.Error("failed to list notifications", "error", err)
		data.Error = loadErrorMessage("notifications", err)
		s.Templates.Render(w, "notifications.html", data)
		return
	}

	data.Notifications = list.Data
	data.UnreadCount = list.UnreadCount
	s.Templates.Render(w, "notifications.html", data)
}

// NotificationReadSubmit marks one notification read.
func (s *Server) NotificationReadSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	id := r.PathValue("id")

	if err := s.Freight.MarkNotificationRead(r.Context(), viewer.Token, id); err != nil {
		slog.Error("failed to mark notification read", "notification", id, "error", err)
		redirectWithError(w, r, "/notifications", actionErrorMessage(err))
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
