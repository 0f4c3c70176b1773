package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
)

const disputeThreadPrefix = "freight-dispute:"

// thread is one grouped mailbox conversation.
type thread struct {
	Key         string
	Subject     string
	Messages    []freight.Message
	LastAt      time.Time
	Unread      int
	IsDispute   bool
	DisputeInfo *freight.DisputeThreadInfo
	JobID       string
}

// inboxData is the template data for the inbox page.
type inboxData struct {
	PageData
	Threads     []thread
	Open        *thread
	Tab         string
	UnreadOnly  bool
	UnreadCount int
}

// threadKey determines which conversation a message belongs to. Platform
// threads keep their prefixed ids; legacy messages without one are grouped
// by the job they reference, then by raw thread id.
func threadKey(m freight.Message) string {
	if strings.HasPrefix(m.ThreadID, disputeThreadPrefix) || strings.HasPrefix(m.ThreadID, "freight:") {
		return m.ThreadID
	}
	if m.Metadata != nil && m.Metadata.FreightJobID != "" {
		return "freight:" + m.Metadata.FreightJobID
	}
	if m.ThreadID != "" {
		return m.ThreadID
	}
	if m.MessageID != "" {
		return m.MessageID
	}
	return m.ID
}

// groupThreads groups messages into threads, each ordered oldest first,
// with threads ordered by their latest message, newest thread first.
func groupThreads(mb *freight.Mailbox) []thread {
	byKey := map[string]*thread{}
	var order []string

	for _, msg := range mb.Messages {
		key := threadKey(msg)
		t, ok := byKey[key]
		if !ok {
			t = &thread{Key: key, IsDispute: strings.HasPrefix(key, disputeThreadPrefix)}
			if strings.HasPrefix(key, "freight:") {
				t.JobID = strings.TrimPrefix(key, "freight:")
			}
			if info, ok := mb.DisputeThreadInfo[key]; ok {
				infoCopy := info
				t.DisputeInfo = &infoCopy
			}
			byKey[key] = t
			order = append(order, key)
		}

		t.Messages = append(t.Messages, msg)
		if t.Subject == "" && msg.Subject != "" {
			t.Subject = msg.Subject
		}
		if !msg.Read && msg.Direction == "inbound" {
			t.Unread++
		}
		if msg.CreatedAt != nil && msg.CreatedAt.After(t.LastAt) {
			t.LastAt = *msg.CreatedAt
		}
	}

	threads := make([]thread, 0, len(order))
	for _, key := range order {
		t := byKey[key]
		sort.SliceStable(t.Messages, func(i, j int) bool {
			ti, tj := t.Messages[i].CreatedAt, t.Messages[j].CreatedAt
			if ti == nil || tj == nil {
				return tj == nil && ti != nil
			}
			return ti.Before(*tj)
		})
		threads = append(threads, *t)
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastAt.After(threads[j].LastAt)
	})
	return threads
}

// replyRecipient is the address a reply on the thread goes to: the sender of
// the first inbound message, else the first recipient of the latest message.
func replyRecipient(t *thread) string {
	for _, m := range t.Messages {
		if m.Direction == "inbound" && m.FromEmail != "" {
			return m.FromEmail
		}
	}
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if len(t.Messages[i].ToEmails) > 0 {
			return t.Messages[i].ToEmails[0]
		}
	}
	return ""
}

// replySubject prefixes a reply subject with "Re:" unless already present.
func replySubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// mailboxContext maps the inbox tab to the upstream context parameter.
func mailboxContext(tab string) string {
	if tab == "disputes" {
		return "disputes"
	}
	return "freight"
}

// inboxPath rebuilds the inbox URL for a tab, optionally opening a thread.
func inboxPath(tab, threadKey string) string {
	path := "/inbox?tab=" + url.QueryEscape(tab)
	if threadKey != "" {
		path += "&thread=" + url.QueryEscape(threadKey)
	}
	return path
}

// InboxPage shows grouped mailbox threads for one tab (messages or
// disputes). Opening a thread marks its first unread inbound message read.
func (s *Server) InboxPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	tab := r.URL.Query().Get("tab")
	if tab != "disputes" {
		tab = "messages"
	}

	data := inboxData{
		PageData:   PageData{Title: "Inbox", User: &viewer.User},
		Tab:        tab,
		UnreadOnly: r.URL.Query().Get("unread") == "1",
	}
	flashFromQuery(&data.PageData, r)

	mb, err := s.Freight.FetchMailbox(r.Context(), viewer.Token, freight.MailboxParams{
		Context:    mailboxContext(tab),
		UnreadOnly: data.UnreadOnly,
	})
	if err != nil {
		slog.Error("failed to fetch mailbox", "error", err)
		data.Error = loadErrorMessage("inbox", err)
		s.Templates.Render(w, "inbox.html", data)
		return
	}

	data.Threads = groupThreads(mb)
	data.UnreadCount = mb.UnreadCount

	openKey := r.URL.Query().Get("thread")
	for i := range data.Threads {
		if data.Threads[i].Key != openKey {
			continue
		}
		data.Open = &data.Threads[i]
		for _, msg := range data.Open.Messages {
			if msg.Read || msg.Direction != "inbound" {
				continue
			}
			if err := s.Freight.MarkMessageRead(r.Context(), viewer.Token, msg.ID); err != nil {
				slog.Warn("failed to mark message read", "message", msg.ID, "error", err)
			}
			break
		}
		break
	}

	s.Templates.Render(w, "inbox.html", data)
}

// InboxSendSubmit sends a reply on a thread. The recipient is derived from
// the thread's own messages; dispute threads are routed by the platform, so
// no recipient is attached.
func (s *Server) InboxSendSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	key := r.FormValue("thread_key")
	tab := r.FormValue("tab")
	if tab != "disputes" {
		tab = "messages"
	}
	body := strings.TrimSpace(r.FormValue("body"))
	page := inboxPath(tab, key)
	if body == "" {
		redirectWithError(w, r, page, "message body is required")
		return
	}

	msg := freight.OutgoingMessage{
		Subject:   replySubject(r.FormValue("subject")),
		Body:      body,
		ThreadID:  key,
		InReplyTo: r.FormValue("in_reply_to"),
	}

	if !strings.HasPrefix(key, disputeThreadPrefix) {
		mb, err := s.Freight.FetchMailbox(r.Context(), viewer.Token, freight.MailboxParams{
			Context:  mailboxContext(tab),
			ThreadID: key,
		})
		if err != nil {
			slog.Error("failed to fetch thread for reply", "thread", key, "error", err)
			redirectWithError(w, r, page, actionErrorMessage(err))
			return
		}

		for _, t := range groupThreads(mb) {
			if t.Key == key {
				msg.To = replyRecipient(&t)
				msg.FreightJobID = t.JobID
				break
			}
		}
		if msg.To == "" {
			redirectWithError(w, r, page, "no recipient found for this conversation")
			return
		}
	}

	if err := s.Freight.SendMailboxMessage(r.Context(), viewer.Token, msg); err != nil {
		slog.Error("failed to send message", "thread", key, "error", err)
		redirectWithError(w, r, page, actionErrorMessage(err))
		return
	}
	http.Redirect(w, r, page, http.StatusSeeOther)
}
