package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/stl"
)

// newConvertCmd creates the convert command, which re-encodes a mesh between
// the text and binary STL encodings.
func newConvertCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <file.stl>",
		Short: "Re-encode an STL file as text or binary",
		Long: `Parse an STL file (either encoding) and write it back out in the
requested encoding. Coordinates are preserved exactly at float32 precision,
so binary to binary conversion is value-identical.

Examples:
  meshwalk convert part.stl --to binary -o part.bin.stl
  meshwalk convert part.bin.stl --to text -o part.txt.stl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := readMeshFile(args[0])
			if err != nil {
				return err
			}
			m, err := stl.Decoder{Warn: logger.Warnf}.Decode(data)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			switch format {
			case "binary":
				err = stl.EncodeBinary(m, &buf)
			case "text":
				err = stl.EncodeText(m, &buf)
			default:
				return errors.New(errors.ErrCodeInvalidInput,
					"unknown encoding %q: want \"text\" or \"binary\"", format)
			}
			if err != nil {
				return err
			}

			if err := writeOutput(buf.Bytes(), output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output != "" {
				printSuccess("Encoded %d facets as %s STL", m.FacetCount(), format)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "to", "binary", "target encoding: text or binary")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
