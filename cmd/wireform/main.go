// Command wireform converts provider payloads between wire formats. It
// reads a JSON payload from stdin, decodes it from the source format, and
// writes the target format's rendition to stdout.
//
//	wireform -from anthropic -to chat_completions < messages.json
//	wireform -chunk -to responses < chunk.json
//	wireform -validate request -from chat_completions < request.json
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"

	"github.com/wireform/wireform"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/validate"
)

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelWarn}),
	))
}

func main() {
	var (
		from      = flag.String("from", "", "source format (chat_completions, responses, anthropic, google)")
		to        = flag.String("to", "", "target format")
		chunk     = flag.Bool("chunk", false, "treat input as a streaming chunk and auto-detect its format")
		kindCheck = flag.String("validate", "", "validate instead of convert: request, response, or stream_chunk")
		tools     = flag.Bool("tools", false, "treat input as tool definitions")
	)
	flag.Parse()

	if err := run(*from, *to, *chunk, *kindCheck, *tools); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func run(from, to string, chunk bool, kindCheck string, tools bool) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	switch {
	case kindCheck != "":
		return runValidate(provider.Format(from), kindCheck, string(input))
	case chunk:
		return runChunk(string(input), provider.Format(to))
	case tools:
		return runTools(provider.Format(from), provider.Format(to), input)
	default:
		return runConvert(provider.Format(from), provider.Format(to), input)
	}
}

func runConvert(from, to provider.Format, input []byte) error {
	out, err := wireform.Convert(from, to, input)
	if err != nil {
		return err
	}
	return emit(out)
}

func runTools(from, to provider.Format, input []byte) error {
	decoded, err := wireform.DecodeTools(from, input)
	if err != nil {
		return err
	}
	out, err := wireform.EncodeTools(to, decoded)
	if err != nil {
		return err
	}
	return emit(out)
}

func runChunk(input string, to provider.Format) error {
	res, err := wireform.TransformStreamChunk(input, to)
	if err != nil {
		return err
	}
	log.Debug().
		Str("source", string(res.SourceFormat)).
		Bool("pass_through", res.PassThrough).
		Msg("chunk transformed")
	_, err = fmt.Println(string(res.Data))
	return err
}

func runValidate(f provider.Format, kind, input string) error {
	var res validate.Result
	switch kind {
	case "request":
		res = wireform.ValidateRequest(f, input)
	case "response":
		res = wireform.ValidateResponse(f, input)
	case "stream_chunk":
		res = wireform.ValidateStreamChunk(f, input)
	default:
		return fmt.Errorf("unknown validation kind %q", kind)
	}

	if !res.OK {
		fmt.Println(color.RedString("invalid:"), res.Err.Message)
		os.Exit(1)
	}
	fmt.Println(color.GreenString("valid"))
	return nil
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
