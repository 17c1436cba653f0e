package google

import (
	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

type codec struct{}

func (codec) Format() provider.Format { return provider.Google }

func (codec) DecodeMessages(raw any) ([]messages.Message, error) { return DecodeMessages(raw) }

func (codec) EncodeMessages(msgs []messages.Message) ([]map[string]any, error) {
	return EncodeMessages(msgs)
}

func (codec) DecodeTools(raw any) ([]tool.Tool, error) { return DecodeTools(raw) }

func (codec) EncodeTools(tools []tool.Tool) ([]map[string]any, error) { return EncodeTools(tools) }

func init() {
	provider.Register(codec{})
	provider.RegisterStream(streamCodec{})
}
