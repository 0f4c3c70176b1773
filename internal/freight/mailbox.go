package freight

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MailboxParams filters the mailbox listing.
type MailboxParams struct {
	UnreadOnly bool
	Limit      int
	Offset     int
	Context    string // "freight" or "disputes"
	ThreadID   string
}

// Mailbox is the threaded-message listing payload.
type Mailbox struct {
	Messages          []Message                    `json:"messages"`
	Total             int                          `json:"total"`
	UnreadCount       int                          `json:"unreadCount"`
	DisputeThreadInfo map[string]DisputeThreadInfo `json:"disputeThreadInfo,omitempty"`
}

// FetchMailbox fetches messages for the carrier's mailbox.
func (c *Client) FetchMailbox(ctx context.Context, token string, params MailboxParams) (*Mailbox, error) {
	q := url.Values{}
	if params.UnreadOnly {
		q.Set("unreadOnly", "true")
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Context == "freight" || params.Context == "disputes" {
		q.Set("context", params.Context)
	}
	if params.ThreadID != "" {
		q.Set("threadId", params.ThreadID)
	}

	var mb Mailbox
	if err := c.do(ctx, token, http.MethodGet, "/mailbox", q, nil, &mb); err != nil {
		return nil, err
	}
	return &mb, nil
}

// OutgoingMessage is a message send request. To may be empty for dispute
// threads, where the platform routes by thread id.
type OutgoingMessage struct {
	To           string `json:"to,omitempty"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	ThreadID     string `json:"threadId,omitempty"`
	InReplyTo    string `json:"inReplyTo,omitempty"`
	WarehouseID  string `json:"warehouseId,omitempty"`
	FreightJobID string `json:"freightJobId,omitempty"`
}

// SendMailboxMessage appends a message to a thread (or starts one).
func (c *Client) SendMailboxMessage(ctx context.Context, token string, msg OutgoingMessage) error {
	return c.do(ctx, token, http.MethodPost, "/mailbox/send", nil, msg, nil)
}

// MarkMessageRead marks one mailbox message as read.
func (c *Client) MarkMessageRead(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodPut, "/mailbox/read", nil, map[string]string{"id": id}, nil)
}
