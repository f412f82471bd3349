package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"i18n-extract/internal/aggregate"
	"i18n-extract/internal/config"
	"i18n-extract/internal/document"
	"i18n-extract/internal/extractor"
	"i18n-extract/internal/filewalker"
	"i18n-extract/internal/pending"
	"i18n-extract/internal/session"
	"i18n-extract/internal/worker"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the translatable segments of one file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			segs, err := extractFile(ctx, cfg, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), segs)
		},
	}
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending <file>",
		Short: "Print the translation records awaiting keys for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := newSession(cfg)
			if err != nil {
				return err
			}
			if _, err := s.Update(ctx, args[0]); err != nil {
				return err
			}
			records := s.PendingWrite(locales(cfg))
			if records == nil {
				records = []aggregate.Record{}
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Extract every supported file under a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			results, err := runScan(ctx, cfg, args[0], all)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().Bool("all", false, "Include files without segments")
	return cmd
}

func aggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate <records.json>",
		Short: "Group finished translation records into per-file resource trees",
		Long: `Reads a JSON array of translation records ("-" for stdin) and prints one write group
per destination file. Records without a key get one derived from the --key-locale
translation when --namespace is set. With --merge the existing resource file at each
destination is read and only the touched namespaces are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace, _ := cmd.Flags().GetString("namespace")
			keyLocale, _ := cmd.Flags().GetString("key-locale")
			merge, _ := cmd.Flags().GetBool("merge")

			records, err := readRecords(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if namespace != "" {
				assignKeys(records, namespace, keyLocale)
			}
			groups := aggregate.Aggregate(records)
			log.Info().Int("records", len(records)).Int("files", len(groups)).Msg("Aggregated translation records")
			if !merge {
				return writeJSON(cmd.OutOrStdout(), groups)
			}
			merged, err := mergeExisting(groups)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), merged)
		},
	}
	cmd.Flags().String("namespace", "", "Root key for records without a key")
	cmd.Flags().String("key-locale", "en", "Locale whose translation names generated keys")
	cmd.Flags().Bool("merge", false, "Merge into the existing resource files instead of printing write groups")
	return cmd
}

func newSession(cfg *config.Config) (*session.Session, error) {
	newDispatcher, err := dispatcherFactory(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(document.FileProvider{}, newDispatcher(), cfg.CacheSize)
}

func extractFile(ctx context.Context, cfg *config.Config, path string) ([]extractor.Segment, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	segs, err := s.Update(ctx, path)
	if err != nil {
		return nil, err
	}
	if segs == nil {
		segs = []extractor.Segment{}
	}
	return segs, nil
}

// fileResult is the scan output for one file.
type fileResult struct {
	File     string              `json:"file"`
	Segments []extractor.Segment `json:"segments"`
	Error    string              `json:"error,omitempty"`
}

func runScan(ctx context.Context, cfg *config.Config, root string, all bool) ([]fileResult, error) {
	newDispatcher, err := dispatcherFactory(cfg)
	if err != nil {
		return nil, err
	}
	entries, err := filewalker.NewWalker(newDispatcher()).Walk(root)
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool(cfg.WorkerCount, func() worker.ProcessFunc[filewalker.FileEntry, []extractor.Segment] {
		d := newDispatcher()
		provider := document.FileProvider{}
		return func(ctx context.Context, e filewalker.FileEntry) ([]extractor.Segment, error) {
			doc, err := provider.Open(ctx, e.Path)
			if err != nil {
				return nil, err
			}
			return d.Extract(ctx, e.Ext, doc)
		}
	})
	tasks := pool.Execute(ctx, entries)

	results := []fileResult{}
	segments, failed := 0, 0
	for _, task := range tasks {
		r := fileResult{File: task.Input.Path, Segments: task.Result}
		if task.Err != nil {
			r.Error = task.Err.Error()
			failed++
		}
		segments += len(task.Result)
		if r.Segments == nil {
			r.Segments = []extractor.Segment{}
		}
		if all || len(r.Segments) > 0 || r.Error != "" {
			results = append(results, r)
		}
	}
	log.Info().
		Int("files", len(entries)).
		Int("segments", segments).
		Int("failed", failed).
		Msg("Scan complete")
	return results, ctx.Err()
}

func readRecords(stdin io.Reader, path string) ([]aggregate.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []aggregate.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func assignKeys(records []aggregate.Record, namespace, keyLocale string) {
	for i := range records {
		if records[i].Key != "" {
			continue
		}
		if key := pending.SuggestKey(records[i].Languages[keyLocale]); key != "" {
			records[i].Key = namespace + "." + key
		}
	}
}

// mergeExisting replaces the touched namespaces of each destination's current JSON tree.
// Missing files start empty.
func mergeExisting(groups map[string]*aggregate.WriteGroup) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(groups))
	for _, path := range aggregate.Files(groups) {
		existing := map[string]any{}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			log.Warn().Str("file", path).Msg("Only JSON resource files can be merged, starting from an empty tree")
		} else if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, &existing); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		out[path] = aggregate.ReplaceNamespaces(existing, groups[path])
	}
	return out, nil
}
