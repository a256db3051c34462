package mediainfo

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FieldSet names the parameters to extract per stream kind.
type FieldSet map[StreamKind][]string

// DefaultFields covers the properties commonly needed to catalogue a media
// file.
var DefaultFields = FieldSet{
	StreamGeneral: {"Format", "Duration", "OverallBitRate", "FileSize", "Title"},
	StreamVideo: {
		"Format", "Format_Profile", "CodecID", "Width", "Height", "FrameRate",
		"BitRate", "BitDepth", "ScanType", "colour_primaries", "transfer_characteristics",
		"HDR_Format",
	},
	StreamAudio: {"Format", "Format_AdditionalFeatures", "CodecID", "Channels", "ChannelLayout", "BitRate", "SamplingRate", "Language"},
	StreamText:  {"Format", "Language", "Title", "Forced", "Default"},
}

// Stream holds the extracted fields of one stream. Empty values are
// omitted; the library does not distinguish absent from empty.
type Stream struct {
	Kind   StreamKind        `json:"kind" yaml:"kind"`
	Index  int               `json:"index" yaml:"index"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Report is the extracted metadata of one file.
type Report struct {
	Path    string   `json:"path" yaml:"path"`
	Streams []Stream `json:"streams" yaml:"streams"`
}

// StreamsOf returns the streams of one kind in index order.
func (r *Report) StreamsOf(kind StreamKind) []Stream {
	var out []Stream
	for _, s := range r.Streams {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Inspect opens path and extracts fields from every stream of every
// requested kind. A nil fields uses DefaultFields.
func (mi *MediaInfo) Inspect(path string, fields FieldSet) (*Report, error) {
	if fields == nil {
		fields = DefaultFields
	}

	status, err := mi.Open(path)
	if err != nil {
		return nil, err
	}
	if status == 0 {
		return nil, &OpenError{Path: path, Status: status}
	}
	defer func() {
		if err := mi.CloseFile(); err != nil {
			mi.logger.Debug("close file", zap.String("path", path), zap.Error(err))
		}
	}()

	kinds := make([]StreamKind, 0, len(fields))
	for kind := range fields {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	report := &Report{Path: path}
	for _, kind := range kinds {
		n, err := mi.StreamCount(kind)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			stream := Stream{Kind: kind, Index: i, Fields: make(map[string]string)}
			for _, name := range fields[kind] {
				v, err := mi.Get(kind, i, name)
				if err != nil {
					return nil, err
				}
				if v != "" {
					stream.Fields[name] = v
				}
			}
			report.Streams = append(report.Streams, stream)
		}
	}
	return report, nil
}

// Result pairs a path with its report or the error that prevented one.
type Result struct {
	Path   string
	Report *Report
	Err    error
}

// InspectAll inspects paths with up to parallelism independent sessions.
// Per-file failures are returned in the results; session construction
// failures abort the run. The context is checked between files only; a
// native call in progress cannot be cancelled.
func InspectAll(ctx context.Context, config Config, paths []string, fields FieldSet, parallelism int) ([]Result, error) {
	return inspectAll(ctx, func() (*MediaInfo, error) { return New(config) }, paths, fields, parallelism)
}

func inspectAll(ctx context.Context, open func() (*MediaInfo, error), paths []string, fields FieldSet, parallelism int) ([]Result, error) {
	if parallelism <= 0 {
		parallelism = 1
	}
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, path := range paths {
		i, path := i, path
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			mi, err := open()
			if err != nil {
				return err
			}
			defer mi.Close()

			report, err := mi.Inspect(path, fields)
			results[i].Report = report
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// IsOpenFailure reports whether err is a failed MediaInfo_Open.
func IsOpenFailure(err error) bool {
	var oe *OpenError
	return errors.As(err, &oe)
}
