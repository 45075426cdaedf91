package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/harunnryd/kiroku/internal/mapper"
	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/record"
)

// Lines can carry whole request/response bodies; 16 MiB covers the large
// multimodal ones.
const maxLineBytes = 16 << 20

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map stored records to the canonical schema",
	Long:  `Reads stored request/response records as JSON lines and writes one canonical mapped object per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cfg.Input.Path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := openOutput(cfg.Output.Path)
		if err != nil {
			return err
		}
		defer out.Close()

		return runMap(in, out)
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().StringP("input.path", "i", "-", "input JSONL file of stored records (- for stdin)")
	mapCmd.Flags().StringP("output.path", "o", "-", "output file (- for stdout)")
	mapCmd.Flags().Bool("output.pretty", false, "indent emitted JSON")
	mapCmd.Flags().Bool("output.preview_only", false, "emit only id, model, type, and preview")
}

func runMap(in io.Reader, out io.Writer) error {
	m := mapper.New()
	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var line, skipped int
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec record.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("Skipping unparseable record line", "line", line, "error", err)
			skipped++
			continue
		}
		if rec.RequestID == "" {
			rec.RequestID = ulid.Make().String()
		}

		mapped, err := m.Map(rec)
		if err != nil {
			// Only a registry misconfiguration lands here; abort loudly.
			return fmt.Errorf("mapping record %s: %w", rec.RequestID, err)
		}

		if err := emit(w, mapped); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	if skipped > 0 {
		slog.Warn("Finished with skipped lines", "lines", line, "skipped", skipped)
	}
	return nil
}

func emit(w io.Writer, mapped contract.MappedLLMRequest) error {
	var payload any = mapped
	if cfg.Output.PreviewOnly {
		payload = map[string]any{
			"id":      mapped.ID,
			"model":   mapped.Model,
			"_type":   mapped.MapperType,
			"preview": mapped.Preview,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding mapped record %s: %w", mapped.ID, err)
	}
	if cfg.Output.Pretty {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
