package mailer

import (
	"context"

	"farewatch/internal/pkg/errs"
)

// ErrPermanent marks failures that will not succeed on retry (rejected
// recipient, malformed message). Anything else is treated as transient.
var ErrPermanent = errs.New("permanent mail failure")

// Message is one outbound notification. Reference is a caller-chosen unique
// id reused for de-duplication and provider-side logging.
type Message struct {
	To        string
	Subject   string
	HTMLBody  string
	Reference string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
