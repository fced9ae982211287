package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-cleanse/message"
	"github.com/zostay/go-email-cleanse/message/walk"
)

var (
	mboxInput bool
	indent    bool
	envelope  bool
)

// envelopeDict is a message dict with the parsed envelope added.
type envelopeDict struct {
	Envelope message.Envelope `json:"envelope"`
	message.Dict
}

var dumpCmd = &cobra.Command{
	Use:   "dump [message-file]",
	Short: "Dumps a message as JSON with headers and text decoded",
	Long: `Parses an RFC 5322 message and writes it as JSON holding the decoded
headers, the text alternatives and the attachments (content in base64). Reads
standard input when no file or "-" is given. With --mbox, every message of the
mbox is written, one JSON document each. With --envelope, the date, address,
subject and keyword fields are also written in parsed form under "envelope".`,
	Args: cobra.MaximumNArgs(1),
	RunE: RunDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&mboxInput, "mbox", false, "read the input as an mbox")
	dumpCmd.Flags().BoolVar(&indent, "indent", false, "indent the JSON output")
	dumpCmd.Flags().BoolVar(&envelope, "envelope", false, "add the parsed envelope fields")
	rootCmd.AddCommand(dumpCmd)
}

func RunDump(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if indent || cfg.Output.Indent {
		enc.SetIndent("", "  ")
	}

	opts := []walk.ParseOption{
		walk.WithLogger(logger),
		walk.WithWordDecoder(dec),
	}
	if len(cfg.Decode.AttachmentHeaders) > 0 {
		opts = append(opts, walk.WithAttachmentHeaders(cfg.Decode.AttachmentHeaders...))
	}

	if mboxInput {
		return walk.ParseMbox(in, func(i int, msg *message.UnicodeMessage) error {
			logger.Debug("dumping message", "index", i)
			return dumpMessage(enc, msg)
		}, opts...)
	}

	msg, err := walk.Parse(in, opts...)
	if err != nil {
		return err
	}

	return dumpMessage(enc, msg)
}

func dumpMessage(enc *json.Encoder, msg *message.UnicodeMessage) error {
	d, err := msg.AsDict()
	if err != nil {
		return fmt.Errorf("unable to convert message: %w", err)
	}

	if envelope {
		return enc.Encode(envelopeDict{Envelope: msg.Envelope(), Dict: d})
	}

	return enc.Encode(d)
}
