package message

import (
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-email-cleanse/message/header"
)

// EnvelopeAddress is one address from an address field.
type EnvelopeAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// Envelope holds the header fields most often wanted from a message, parsed
// into typed values. A field that is missing, or a date that cannot be parsed,
// is left empty. Address fields are parsed leniently, so broken addresses still
// show up in some form.
type Envelope struct {
	Date     *time.Time        `json:"date,omitempty"`
	From     []EnvelopeAddress `json:"from,omitempty"`
	Sender   []EnvelopeAddress `json:"sender,omitempty"`
	ReplyTo  []EnvelopeAddress `json:"reply_to,omitempty"`
	To       []EnvelopeAddress `json:"to,omitempty"`
	Cc       []EnvelopeAddress `json:"cc,omitempty"`
	Subject  string            `json:"subject,omitempty"`
	Keywords []string          `json:"keywords,omitempty"`
}

// Envelope parses the envelope fields out of the message header. Fields that
// may repeat (From, Reply-To, To, Cc and Keywords) are gathered from every
// occurrence. Date and Sender are only filled in when the field appears once.
// Subject is taken from the first occurrence.
func (m *UnicodeMessage) Envelope() Envelope {
	var env Envelope

	if d, err := m.GetDate(); err == nil {
		env.Date = &d
	}

	if al, err := m.GetAddressList(header.Sender); err == nil {
		env.Sender = envelopeAddresses(al)
	}

	env.From = m.allAddresses(header.From)
	env.ReplyTo = m.allAddresses(header.ReplyTo)
	env.To = m.allAddresses(header.To)
	env.Cc = m.allAddresses(header.Cc)

	env.Subject, _ = m.Get(header.Subject)
	env.Keywords, _ = m.GetKeywordsList(header.Keywords)

	return env
}

func (m *UnicodeMessage) allAddresses(name string) []EnvelopeAddress {
	als, err := m.GetAllAddressLists(name)
	if err != nil {
		return nil
	}

	var eas []EnvelopeAddress
	for _, al := range als {
		eas = append(eas, envelopeAddresses(al)...)
	}

	return eas
}

func envelopeAddresses(al addr.AddressList) []EnvelopeAddress {
	eas := make([]EnvelopeAddress, 0, len(al))
	for _, a := range al {
		eas = append(eas, EnvelopeAddress{
			Name:    a.DisplayName(),
			Address: a.Address(),
		})
	}
	return eas
}
