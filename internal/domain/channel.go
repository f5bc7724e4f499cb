package domain

// Channel identifies an inbound/outbound communication medium.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWebForm  Channel = "web_form"
)

// Known reports whether the channel is one this service understands.
func (c Channel) Known() bool {
	switch c {
	case ChannelEmail, ChannelWhatsApp, ChannelWebForm:
		return true
	}
	return false
}
