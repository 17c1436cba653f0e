package provider

import (
	"github.com/alphadose/haxmap"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/tool"
)

// Codec converts between one provider wire format and the IR. Decoders
// accept already-parsed JSON values (maps/slices) or structurally
// compatible SDK objects; encoders emit plain provider-shaped maps.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	Format() Format
	DecodeMessages(raw any) ([]messages.Message, error)
	EncodeMessages(msgs []messages.Message) ([]map[string]any, error)
	DecodeTools(raw any) ([]tool.Tool, error)
	EncodeTools(tools []tool.Tool) ([]map[string]any, error)
}

// StreamCodec handles one provider's streaming chunk shape.
type StreamCodec interface {
	Format() Format
	// MatchesChunk reports whether the chunk carries this format's
	// delta/event discriminators.
	MatchesChunk(chunk gjson.Result) bool
	DecodeChunk(chunk gjson.Result) (*ChunkDelta, error)
	EncodeChunk(delta *ChunkDelta) ([]byte, error)
}

// ChunkDelta is the internal incremental form a streaming chunk decodes
// into before being re-encoded for a different target format.
type ChunkDelta struct {
	ID           string
	Model        string
	Role         string
	Text         string
	Reasoning    string
	ToolCall     *ToolCallDelta
	FinishReason string
	Done         bool
	_            struct{} // require keyed usage
}

// ToolCallDelta is an incremental tool-call fragment inside a chunk. The
// first fragment carries ID and Name; later fragments append Arguments.
type ToolCallDelta struct {
	Index     int
	ID        string
	Name      string
	Arguments string
	_         struct{} // require keyed usage
}

var (
	codecs       = haxmap.New[string, Codec]()
	streamCodecs = haxmap.New[string, StreamCodec]()
)

// Register installs a message codec for its format. Registration is
// ensure-once: concurrent attempts for the same format race to install
// exactly one codec and later attempts are no-ops.
func Register(c Codec) {
	codecs.GetOrCompute(string(c.Format()), func() Codec { return c })
}

// RegisterStream installs a stream codec for its format, ensure-once.
func RegisterStream(c StreamCodec) {
	streamCodecs.GetOrCompute(string(c.Format()), func() StreamCodec { return c })
}

// Lookup returns the registered codec for a format.
func Lookup(f Format) (Codec, bool) {
	return codecs.Get(string(f))
}

// LookupStream returns the registered stream codec for a format.
func LookupStream(f Format) (StreamCodec, bool) {
	return streamCodecs.Get(string(f))
}
