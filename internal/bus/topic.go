package bus

import (
	"fmt"
	"strconv"
	"strings"
)

// Topic names a channel on the bus.
type Topic string

const (
	messagePrefix    = "message:"
	sharePrefix      = "share:"
	validationPrefix = "validation:"
)

// MessageTopic carries new-message events for one telephone.
func MessageTopic(telephoneID int64) Topic {
	return Topic(messagePrefix + strconv.FormatInt(telephoneID, 10))
}

// ShareTopic carries share-state changes for one account.
func ShareTopic(accountID int64) Topic {
	return Topic(sharePrefix + strconv.FormatInt(accountID, 10))
}

// ValidationTopic carries validation-code replies for one account.
func ValidationTopic(accountID int64) Topic {
	return Topic(validationPrefix + strconv.FormatInt(accountID, 10))
}

// TelephoneID returns the telephone id of a message topic.
func (t Topic) TelephoneID() (int64, error) {
	s := string(t)
	if !strings.HasPrefix(s, messagePrefix) {
		return 0, fmt.Errorf("topic %q is not a message topic", s)
	}
	return strconv.ParseInt(strings.TrimPrefix(s, messagePrefix), 10, 64)
}

// Kind returns the topic family ("message", "share" or "validation").
func (t Topic) Kind() string {
	kind, _, _ := strings.Cut(string(t), ":")
	return kind
}

func (t Topic) String() string {
	return string(t)
}
